package models

import "time"

// Audio is an uploaded media file. Guid doubles as the storage key component
// and never changes; the record is immutable apart from deletion.
type Audio struct {
	ID          int64     `db:"id" json:"id"`
	OwnerUserID int64     `db:"owner_user_id" json:"owner_user_id"`
	Filename    string    `db:"filename" json:"filename"`
	Duration    int       `db:"duration" json:"duration"`
	Length      int64     `db:"length" json:"length"`
	Type        string    `db:"type" json:"type"`
	Guid        string    `db:"guid" json:"guid"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (a *Audio) Owner() int64 { return a.OwnerUserID }
