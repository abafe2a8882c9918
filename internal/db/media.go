package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/models"
)

func (s *Store) CreateAudio(a *models.Audio) (*models.Audio, error) {
	created := models.Audio{}
	err := s.db.Get(&created, `
		INSERT INTO audios (owner_user_id, filename, duration, length, type, guid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`,
		a.OwnerUserID, a.Filename, a.Duration, a.Length, a.Type, a.Guid)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) GetAudio(id int64) (*models.Audio, error) {
	audio := models.Audio{}
	err := s.db.Get(&audio, "SELECT * FROM audios WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("audio %d: %w", id, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &audio, nil
}

func (s *Store) ListAudiosByUser(userID int64) ([]models.Audio, error) {
	var audios []models.Audio
	err := s.db.Select(&audios, `
		SELECT * FROM audios
		WHERE owner_user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return audios, nil
}

func (s *Store) ListAudiosByIDs(ids []int64) ([]models.Audio, error) {
	query, args, err := sqlx.In("SELECT * FROM audios WHERE id IN (?) ORDER BY owner_user_id", ids)
	if err != nil {
		return nil, err
	}
	var audios []models.Audio
	if err := s.db.Select(&audios, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return audios, nil
}

func (s *Store) DeleteAudio(id int64) error {
	_, err := s.db.Exec("DELETE FROM audios WHERE id = $1", id)
	return err
}

func (s *Store) CreateImage(i *models.Image) (*models.Image, error) {
	created := models.Image{}
	err := s.db.Get(&created, `
		INSERT INTO images (owner_user_id, filename, guid, type)
		VALUES ($1, $2, $3, $4)
		RETURNING *`,
		i.OwnerUserID, i.Filename, i.Guid, i.Type)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) GetImage(id int64) (*models.Image, error) {
	image := models.Image{}
	err := s.db.Get(&image, "SELECT * FROM images WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("image %d: %w", id, apperr.ErrNoSuchEntity)
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *Store) ListImagesByUser(userID int64) ([]models.Image, error) {
	var images []models.Image
	err := s.db.Select(&images, `
		SELECT * FROM images
		WHERE owner_user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (s *Store) ListImagesByIDs(ids []int64) ([]models.Image, error) {
	query, args, err := sqlx.In("SELECT * FROM images WHERE id IN (?) ORDER BY owner_user_id", ids)
	if err != nil {
		return nil, err
	}
	var images []models.Image
	if err := s.db.Select(&images, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *Store) DeleteImage(id int64) error {
	_, err := s.db.Exec("DELETE FROM images WHERE id = $1", id)
	return err
}
