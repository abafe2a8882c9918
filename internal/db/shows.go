package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/models"
)

func (s *Store) CreateShow(show *models.Show) (*models.Show, error) {
	created := models.Show{}
	err := s.db.Get(&created, `
		INSERT INTO shows
			(owner_user_id, title, description, subtitle, language, author,
			 category, explicit, image_id, alias)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *`,
		show.OwnerUserID, show.Title, show.Description, show.Subtitle,
		show.Language, show.Author, show.Category, show.Explicit,
		show.ImageID, show.Alias)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) GetShow(id int64) (*models.Show, error) {
	show := models.Show{}
	err := s.db.Get(&show, "SELECT * FROM shows WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("show %d: %w", id, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func (s *Store) GetShowByAlias(alias string) (*models.Show, error) {
	show := models.Show{}
	err := s.db.Get(&show, "SELECT * FROM shows WHERE alias = $1", alias)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("show %q: %w", alias, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func (s *Store) ListShowsByUser(userID int64) ([]models.Show, error) {
	var shows []models.Show
	err := s.db.Select(&shows, `
		SELECT * FROM shows
		WHERE owner_user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return shows, nil
}

// UpdateShowBuildDatetime stamps the show after a publicly visible change.
// The value surfaces as the feed's lastBuildDate.
func (s *Store) UpdateShowBuildDatetime(showID int64, t time.Time) error {
	_, err := s.db.Exec(`
		UPDATE shows
		SET last_build_datetime = $1, updated_at = NOW()
		WHERE id = $2`, t, showID)
	return err
}
