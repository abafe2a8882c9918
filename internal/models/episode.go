package models

import "time"

// DraftStatus is the publication state of an episode.
type DraftStatus string

const (
	StatusDraft     DraftStatus = "draft"
	StatusScheduled DraftStatus = "scheduled"
	StatusPublished DraftStatus = "published"
)

// Episode belongs to a show and references uploaded audio and artwork.
// AudioID may stay nil while the episode is a draft. Guid is assigned once
// at creation and identifies the episode's feed item across republishes.
type Episode struct {
	ID                int64       `db:"id" json:"id"`
	OwnerUserID       int64       `db:"owner_user_id" json:"owner_user_id"`
	ShowID            int64       `db:"show_id" json:"show_id"`
	Title             string      `db:"title" json:"title"`
	Subtitle          string      `db:"subtitle" json:"subtitle"`
	Description       string      `db:"description" json:"description"`
	AudioID           *int64      `db:"audio_id" json:"audio_id"`
	ImageID           *int64      `db:"image_id" json:"image_id"`
	DraftStatus       DraftStatus `db:"draft_status" json:"draft_status"`
	ScheduledDatetime *time.Time  `db:"scheduled_datetime" json:"scheduled_datetime"`
	PublishedDatetime *time.Time  `db:"published_datetime" json:"published_datetime"`
	Explicit          bool        `db:"explicit" json:"explicit"`
	Guid              string      `db:"guid" json:"guid"`
	Alias             string      `db:"alias" json:"alias"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
}

func (e *Episode) Owner() int64 { return e.OwnerUserID }
