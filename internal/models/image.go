package models

import "time"

// Image is uploaded artwork, jpeg or png only.
type Image struct {
	ID          int64     `db:"id" json:"id"`
	OwnerUserID int64     `db:"owner_user_id" json:"owner_user_id"`
	Filename    string    `db:"filename" json:"filename"`
	Guid        string    `db:"guid" json:"guid"`
	Type        string    `db:"type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (i *Image) Owner() int64 { return i.OwnerUserID }
