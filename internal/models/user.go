package models

import "time"

// User represents a podcast owner. IdentityID is the opaque reference from
// the identity provider and prefixes the user's storage keys.
type User struct {
	ID         int64     `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	IdentityID string    `db:"identity_id" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Owned is implemented by every entity that carries a denormalized owner id,
// so ownership can be checked without a join.
type Owned interface {
	Owner() int64
}
