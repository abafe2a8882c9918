package models

import "time"

// Show is a podcast owned by a single user. Alias is the URL-safe public
// path segment; LastBuildDatetime is bumped whenever a publicly visible
// change happens under the show and feeds it into the RSS lastBuildDate.
type Show struct {
	ID                int64     `db:"id" json:"id"`
	OwnerUserID       int64     `db:"owner_user_id" json:"owner_user_id"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	Subtitle          string    `db:"subtitle" json:"subtitle"`
	Language          string    `db:"language" json:"language"`
	Author            string    `db:"author" json:"author"`
	Category          string    `db:"category" json:"category"`
	Explicit          bool      `db:"explicit" json:"explicit"`
	ImageID           *int64    `db:"image_id" json:"image_id"`
	Alias             string    `db:"alias" json:"alias"`
	LastBuildDatetime time.Time `db:"last_build_datetime" json:"last_build_datetime"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

func (s *Show) Owner() int64 { return s.OwnerUserID }
