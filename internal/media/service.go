// Package media manages the audio and image records behind episodes and
// shows. Raw ingestion (saving an upload, probing duration and mime type)
// happens upstream; this service registers the resulting metadata and owns
// deletion.
package media

import (
	"fmt"
	"path"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/common"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/storage"
)

const (
	FolderAudio = "audio"
	FolderImage = "image"
)

type Service struct {
	store   *db.Store
	storage storage.MediaStorage
}

func New(store *db.Store, mediaStorage storage.MediaStorage) *Service {
	return &Service{store: store, storage: mediaStorage}
}

type AudioParams struct {
	Filename string `json:"filename"`
	Duration int    `json:"duration"`
	Length   int64  `json:"length"`
	Type     string `json:"type"`
}

type ImageParams struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

func (s *Service) RegisterAudio(userID int64, p AudioParams) (*models.Audio, error) {
	return s.store.CreateAudio(&models.Audio{
		OwnerUserID: userID,
		Filename:    p.Filename,
		Duration:    p.Duration,
		Length:      p.Length,
		Type:        p.Type,
		Guid:        common.NewGUID(),
	})
}

func (s *Service) RegisterImage(userID int64, p ImageParams) (*models.Image, error) {
	if p.Type != "jpeg" && p.Type != "png" {
		return nil, fmt.Errorf("image type not supported: %s: %w", p.Type, apperr.ErrInvalidValue)
	}
	return s.store.CreateImage(&models.Image{
		OwnerUserID: userID,
		Filename:    p.Filename,
		Guid:        common.NewGUID(),
		Type:        p.Type,
	})
}

func (s *Service) ListAudios(userID int64) ([]models.Audio, error) {
	return s.store.ListAudiosByUser(userID)
}

func (s *Service) ListImages(userID int64) ([]models.Image, error) {
	return s.store.ListImagesByUser(userID)
}

// DeleteResult reports per-item storage cleanup. A failed blob delete does
// not block the database delete; the caller decides whether to retry or
// surface a warning.
type DeleteResult struct {
	ID         int64 `json:"id"`
	StorageErr error `json:"-"`
}

// DeleteAudios removes the audios and their stored blobs. Ownership is
// verified for every target before anything is deleted.
func (s *Service) DeleteAudios(userID int64, ids []int64) ([]DeleteResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	audios, err := s.store.ListAudiosByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(audios) != len(ids) {
		return nil, fmt.Errorf("audios %v: %w", ids, apperr.ErrNoSuchEntity)
	}
	for i := range audios {
		if err := common.VerifyOwnership(userID, &audios[i]); err != nil {
			return nil, err
		}
	}
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	results := make([]DeleteResult, 0, len(audios))
	for i := range audios {
		result := DeleteResult{ID: audios[i].ID}
		result.StorageErr = s.storage.Delete(FolderAudio, path.Join(user.Username, audios[i].Guid))
		if err := s.store.DeleteAudio(audios[i].ID); err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteImages mirrors DeleteAudios for artwork.
func (s *Service) DeleteImages(userID int64, ids []int64) ([]DeleteResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	images, err := s.store.ListImagesByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(images) != len(ids) {
		return nil, fmt.Errorf("images %v: %w", ids, apperr.ErrNoSuchEntity)
	}
	for i := range images {
		if err := common.VerifyOwnership(userID, &images[i]); err != nil {
			return nil, err
		}
	}
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	results := make([]DeleteResult, 0, len(images))
	for i := range images {
		result := DeleteResult{ID: images[i].ID}
		result.StorageErr = s.storage.Delete(FolderImage, path.Join(user.Username, images[i].Guid))
		if err := s.store.DeleteImage(images[i].ID); err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
