package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/models"
)

func (s *Store) GetUser(id int64) (*models.User, error) {
	user := models.User{}
	err := s.db.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	err := s.db.Get(&user, "SELECT * FROM users WHERE username = $1", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
