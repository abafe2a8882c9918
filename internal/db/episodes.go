package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/models"
)

func (s *Store) CreateEpisode(e *models.Episode) (*models.Episode, error) {
	created := models.Episode{}
	err := s.db.Get(&created, `
		INSERT INTO episodes
			(owner_user_id, show_id, title, subtitle, description, audio_id,
			 image_id, draft_status, scheduled_datetime, published_datetime,
			 explicit, guid, alias)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING *`,
		e.OwnerUserID, e.ShowID, e.Title, e.Subtitle, e.Description, e.AudioID,
		e.ImageID, e.DraftStatus, e.ScheduledDatetime, e.PublishedDatetime,
		e.Explicit, e.Guid, e.Alias)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) GetEpisode(id int64) (*models.Episode, error) {
	episode := models.Episode{}
	err := s.db.Get(&episode, "SELECT * FROM episodes WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("episode %d: %w", id, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

func (s *Store) UpdateEpisode(e *models.Episode) error {
	_, err := s.db.Exec(`
		UPDATE episodes
		SET title = $1, subtitle = $2, description = $3, audio_id = $4,
		    image_id = $5, draft_status = $6, scheduled_datetime = $7,
		    published_datetime = $8, explicit = $9, alias = $10,
		    updated_at = NOW()
		WHERE id = $11`,
		e.Title, e.Subtitle, e.Description, e.AudioID, e.ImageID,
		e.DraftStatus, e.ScheduledDatetime, e.PublishedDatetime, e.Explicit,
		e.Alias, e.ID)
	return err
}

func (s *Store) DeleteEpisode(id int64) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE id = $1", id)
	return err
}

// ListEpisodesByShow returns the show's episodes newest first. With
// publishedOnly set, drafts and scheduled episodes are filtered out.
func (s *Store) ListEpisodesByShow(showID int64, publishedOnly bool) ([]models.Episode, error) {
	query := `
		SELECT * FROM episodes
		WHERE show_id = $1
		ORDER BY published_datetime DESC NULLS LAST, id DESC`
	args := []interface{}{showID}
	if publishedOnly {
		query = `
		SELECT * FROM episodes
		WHERE show_id = $1 AND draft_status = $2
		ORDER BY published_datetime DESC NULLS LAST, id DESC`
		args = append(args, models.StatusPublished)
	}
	var episodes []models.Episode
	if err := s.db.Select(&episodes, query, args...); err != nil {
		return nil, err
	}
	return episodes, nil
}

func (s *Store) ListEpisodesByIDs(ids []int64) ([]models.Episode, error) {
	query, args, err := sqlx.In("SELECT * FROM episodes WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	var episodes []models.Episode
	if err := s.db.Select(&episodes, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return episodes, nil
}

// ListDueScheduledEpisodes returns scheduled episodes whose time has come,
// ordered so that episodes of the same show are adjacent and the scanner can
// group them in a single linear pass.
func (s *Store) ListDueScheduledEpisodes(now time.Time) ([]models.Episode, error) {
	var episodes []models.Episode
	err := s.db.Select(&episodes, `
		SELECT * FROM episodes
		WHERE draft_status = $1 AND scheduled_datetime <= $2
		ORDER BY owner_user_id, show_id, id`,
		models.StatusScheduled, now)
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

func (s *Store) ListEpisodeAliases(showID int64) ([]string, error) {
	var aliases []string
	err := s.db.Select(&aliases, "SELECT alias FROM episodes WHERE show_id = $1", showID)
	if err != nil {
		return nil, err
	}
	return aliases, nil
}

// EpisodeAliasTaken reports whether another episode of the show already uses
// the alias. excludeID skips the episode being updated.
func (s *Store) EpisodeAliasTaken(showID int64, alias string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.Get(&taken, `
		SELECT EXISTS (
			SELECT 1 FROM episodes
			WHERE show_id = $1 AND alias = $2 AND id <> $3
		)`, showID, alias, excludeID)
	return taken, err
}
