// Package episodes owns episode creation, update, deletion and the
// draft/scheduled/published state machine.
package episodes

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/common"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/models"
)

// Notifier receives publication events so derived artifacts can be rebuilt.
// Implemented by the publish coordinator; nil disables rebuilds, which the
// batch scanner relies on to defer them until a whole show is processed.
type Notifier interface {
	Publish(episode *models.Episode) error
	RebuildShow(userID, showID int64) error
}

type Service struct {
	store    *db.Store
	notifier Notifier
	now      func() time.Time
}

func New(store *db.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SetNotifier wires the publish coordinator in after construction; the
// coordinator itself depends on this service's store, so the hook cannot be
// a constructor argument.
func (s *Service) SetNotifier(n Notifier) { s.notifier = n }

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// CreateParams carries all caller-settable episode fields.
type CreateParams struct {
	ShowID            int64              `json:"show_id"`
	DraftStatus       models.DraftStatus `json:"draft_status"`
	Alias             string             `json:"alias"`
	AudioID           *int64             `json:"audio_id"`
	ImageID           *int64             `json:"image_id"`
	ScheduledDatetime *time.Time         `json:"scheduled_datetime"`
	Title             string             `json:"title"`
	Subtitle          string             `json:"subtitle"`
	Description       string             `json:"description"`
	Explicit          bool               `json:"explicit"`
}

// UpdateParams overwrites only the fields that are supplied.
type UpdateParams struct {
	DraftStatus       *models.DraftStatus `json:"draft_status"`
	Alias             *string             `json:"alias"`
	AudioID           *int64              `json:"audio_id"`
	ImageID           *int64              `json:"image_id"`
	ScheduledDatetime *time.Time          `json:"scheduled_datetime"`
	Title             *string             `json:"title"`
	Subtitle          *string             `json:"subtitle"`
	Description       *string             `json:"description"`
	Explicit          *bool               `json:"explicit"`
}

// Create builds a new episode under the show, autofills alias and
// timestamps, validates, persists, and triggers a rebuild when the episode
// lands published.
func (s *Service) Create(userID int64, p CreateParams) (*models.Episode, error) {
	show, err := s.store.GetShow(p.ShowID)
	if err != nil {
		return nil, err
	}
	if err := common.VerifyOwnership(userID, show); err != nil {
		return nil, err
	}

	episode := &models.Episode{
		OwnerUserID:       userID,
		ShowID:            show.ID,
		Title:             p.Title,
		Subtitle:          p.Subtitle,
		Description:       p.Description,
		AudioID:           p.AudioID,
		ImageID:           p.ImageID,
		DraftStatus:       p.DraftStatus,
		ScheduledDatetime: p.ScheduledDatetime,
		Explicit:          p.Explicit,
		Guid:              common.NewGUID(),
		Alias:             p.Alias,
	}
	if episode.DraftStatus == "" {
		episode.DraftStatus = models.StatusDraft
	}

	if err := s.autofill(episode); err != nil {
		return nil, err
	}
	if err := s.validate(episode, p.Alias != ""); err != nil {
		return nil, err
	}

	created, err := s.store.CreateEpisode(episode)
	if err != nil {
		return nil, err
	}
	s.updateShowBuildDatetime(created)
	s.notifyPublished(created)
	return created, nil
}

// Update overwrites the supplied fields, then runs the same autofill,
// validation and rebuild sequence as Create.
func (s *Service) Update(userID, episodeID int64, p UpdateParams) (*models.Episode, error) {
	episode, err := s.store.GetEpisode(episodeID)
	if err != nil {
		return nil, err
	}
	if err := common.VerifyOwnership(userID, episode); err != nil {
		return nil, err
	}

	if p.DraftStatus != nil {
		episode.DraftStatus = *p.DraftStatus
	}
	if p.Alias != nil {
		episode.Alias = *p.Alias
	}
	if p.AudioID != nil {
		episode.AudioID = p.AudioID
	}
	if p.ImageID != nil {
		episode.ImageID = p.ImageID
	}
	if p.ScheduledDatetime != nil {
		episode.ScheduledDatetime = p.ScheduledDatetime
	}
	if p.Title != nil {
		episode.Title = *p.Title
	}
	if p.Subtitle != nil {
		episode.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		episode.Description = *p.Description
	}
	if p.Explicit != nil {
		episode.Explicit = *p.Explicit
	}

	if err := s.autofill(episode); err != nil {
		return nil, err
	}
	if err := s.validate(episode, p.Alias != nil); err != nil {
		return nil, err
	}

	if err := s.store.UpdateEpisode(episode); err != nil {
		return nil, err
	}
	s.updateShowBuildDatetime(episode)
	s.notifyPublished(episode)
	return episode, nil
}

// Delete removes the episodes and rebuilds the affected shows. Ownership is
// verified for every target before anything is deleted; one foreign episode
// fails the whole call with nothing removed.
func (s *Service) Delete(userID int64, episodeIDs []int64) error {
	if len(episodeIDs) == 0 {
		return nil
	}
	episodes, err := s.store.ListEpisodesByIDs(episodeIDs)
	if err != nil {
		return err
	}
	if len(episodes) != len(episodeIDs) {
		return fmt.Errorf("episodes %v: %w", episodeIDs, apperr.ErrNoSuchEntity)
	}
	for i := range episodes {
		if err := common.VerifyOwnership(userID, &episodes[i]); err != nil {
			return err
		}
	}

	// Shows that lose a published episode need their public artifacts redone.
	rebuild := make(map[int64]bool)
	for i := range episodes {
		if err := s.store.DeleteEpisode(episodes[i].ID); err != nil {
			return err
		}
		if episodes[i].DraftStatus == models.StatusPublished {
			rebuild[episodes[i].ShowID] = true
		}
	}
	for showID := range rebuild {
		if err := s.store.UpdateShowBuildDatetime(showID, s.now().UTC()); err != nil {
			return err
		}
		if s.notifier == nil {
			continue
		}
		if err := s.notifier.RebuildShow(userID, showID); err != nil {
			// Artifact rebuild is retryable; the deletion stands either way.
			log.Printf("failed to rebuild show %d after delete: %v", showID, err)
		}
	}
	return nil
}

func (s *Service) Get(userID, episodeID int64) (*models.Episode, error) {
	episode, err := s.store.GetEpisode(episodeID)
	if err != nil {
		return nil, err
	}
	if err := common.VerifyOwnership(userID, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

// List returns the show's episodes newest first; publicOnly narrows to
// published ones.
func (s *Service) List(userID, showID int64, publicOnly bool) ([]models.Episode, error) {
	show, err := s.store.GetShow(showID)
	if err != nil {
		return nil, err
	}
	if err := common.VerifyOwnership(userID, show); err != nil {
		return nil, err
	}
	return s.store.ListEpisodesByShow(showID, publicOnly)
}

// Publish transitions the episode to published and stamps
// published_datetime, exactly once. Publishing an already-published episode
// is a no-op. Rebuilding artifacts is the caller's responsibility so the
// batch scanner can defer it until a whole show's episodes are processed.
func (s *Service) Publish(episode *models.Episode) error {
	if episode.DraftStatus == models.StatusPublished {
		return nil
	}
	now := s.now().UTC()
	episode.DraftStatus = models.StatusPublished
	episode.PublishedDatetime = &now
	episode.ScheduledDatetime = nil
	return s.store.UpdateEpisode(episode)
}

// autofill assigns the default alias and normalizes the timestamps to the
// target status before validation runs.
func (s *Service) autofill(episode *models.Episode) error {
	if episode.Alias == "" {
		alias, err := s.defaultAlias(episode.ShowID)
		if err != nil {
			return err
		}
		episode.Alias = alias
	}

	switch episode.DraftStatus {
	case models.StatusPublished:
		if episode.PublishedDatetime == nil {
			now := s.now().UTC()
			episode.PublishedDatetime = &now
		}
		episode.ScheduledDatetime = nil
	case models.StatusScheduled:
		episode.PublishedDatetime = nil
	default:
		episode.PublishedDatetime = nil
		episode.ScheduledDatetime = nil
	}
	return nil
}

// defaultAlias picks the smallest positive integer not already used as an
// alias within the show, scanning upward from count+1.
func (s *Service) defaultAlias(showID int64) (string, error) {
	aliases, err := s.store.ListEpisodeAliases(showID)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		taken[a] = true
	}
	n := len(aliases) + 1
	for taken[strconv.Itoa(n)] {
		n++
	}
	return strconv.Itoa(n), nil
}

// validate runs after autofill and before the first save so a failure leaves
// no partial writes.
func (s *Service) validate(episode *models.Episode, aliasSupplied bool) error {
	if !common.IsValidAlias(episode.Alias) {
		return fmt.Errorf("alias %q: %w", episode.Alias, apperr.ErrInvalidValue)
	}
	if aliasSupplied {
		taken, err := s.store.EpisodeAliasTaken(episode.ShowID, episode.Alias, episode.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("alias %q already in use: %w", episode.Alias, apperr.ErrInvalidValue)
		}
	}

	if episode.AudioID != nil {
		audio, err := s.store.GetAudio(*episode.AudioID)
		if err != nil {
			return err
		}
		if err := common.VerifyOwnership(episode.OwnerUserID, audio); err != nil {
			return err
		}
	}
	if episode.ImageID != nil {
		image, err := s.store.GetImage(*episode.ImageID)
		if err != nil {
			return err
		}
		if err := common.VerifyOwnership(episode.OwnerUserID, image); err != nil {
			return err
		}
	}

	if episode.DraftStatus != models.StatusDraft {
		if episode.Title == "" {
			return &apperr.ValidationError{Field: "title"}
		}
		if episode.Description == "" {
			return &apperr.ValidationError{Field: "description"}
		}
		if episode.AudioID == nil {
			return &apperr.ValidationError{Field: "audio"}
		}
	}
	if episode.DraftStatus == models.StatusScheduled && episode.ScheduledDatetime == nil {
		return &apperr.ValidationError{Field: "scheduled_datetime"}
	}
	return nil
}

// updateShowBuildDatetime stamps the parent show when the episode's
// resulting status is published. No-op otherwise.
func (s *Service) updateShowBuildDatetime(episode *models.Episode) {
	if episode.DraftStatus != models.StatusPublished {
		return
	}
	if err := s.store.UpdateShowBuildDatetime(episode.ShowID, s.now().UTC()); err != nil {
		log.Printf("failed to stamp build datetime for show %d: %v", episode.ShowID, err)
	}
}

// notifyPublished triggers the coordinator's single-episode rebuild. A
// storage failure here must not roll back the state change; the scanner or a
// manual trigger can redo the artifacts.
func (s *Service) notifyPublished(episode *models.Episode) {
	if s.notifier == nil || episode.DraftStatus != models.StatusPublished {
		return
	}
	if err := s.notifier.Publish(episode); err != nil {
		log.Printf("failed to rebuild artifacts for episode %d: %v", episode.ID, err)
	}
}
