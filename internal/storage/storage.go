// Package storage abstracts the public-read object store that derived
// artifacts (feed XML, site HTML) and media files are pushed to.
package storage

// MediaStorage is the object store consumed by the builders. Keys live under
// a folder; everything written is publicly readable.
type MediaStorage interface {
	Upload(data []byte, folder, key, contentType string) error
	Delete(folder, key string) error
	DeleteFolder(folder string) error
}
