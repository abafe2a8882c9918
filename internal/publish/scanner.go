package publish

import (
	"log"
	"time"

	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/models"
)

// EpisodePublisher performs the idempotent scheduled -> published
// transition. Implemented by episodes.Service.
type EpisodePublisher interface {
	Publish(episode *models.Episode) error
}

// ShowSummary reports one show's promoted episodes.
type ShowSummary struct {
	UserID     int64   `json:"user_id"`
	ShowID     int64   `json:"show_id"`
	EpisodeIDs []int64 `json:"episode_ids"`
}

// Scanner promotes due scheduled episodes in bulk. It runs on an external
// timer and is safe to invoke again while a previous run is finishing:
// publishing an already-published episode is a no-op and rebuilds just
// re-render current state.
type Scanner struct {
	store       *db.Store
	episodes    EpisodePublisher
	coordinator *Coordinator
	now         func() time.Time
}

func NewScanner(store *db.Store, episodes EpisodePublisher, coordinator *Coordinator) *Scanner {
	return &Scanner{store: store, episodes: episodes, coordinator: coordinator, now: time.Now}
}

// PublishScheduled promotes every scheduled episode whose time has come.
// Episodes arrive ordered by (owner, show, id), so one linear walk groups
// them per show and each affected show gets exactly one index+feed rebuild
// instead of one per episode. One show's failure is logged and the scan
// moves on to the next show.
func (s *Scanner) PublishScheduled() ([]ShowSummary, error) {
	due, err := s.store.ListDueScheduledEpisodes(s.now().UTC())
	if err != nil {
		return nil, err
	}
	result := []ShowSummary{}
	if len(due) == 0 {
		log.Println("no scheduled episode ready to publish found")
		return result, nil
	}

	start := 0
	for i := 1; i <= len(due); i++ {
		if i < len(due) && due[i].ShowID == due[start].ShowID {
			continue
		}
		group := due[start:i]
		summary, err := s.publishGroup(group)
		if err != nil {
			log.Printf("failed to publish scheduled episodes of show %d: %v", group[0].ShowID, err)
		} else {
			result = append(result, summary)
		}
		start = i
	}
	return result, nil
}

// publishGroup renders and promotes each episode of one show, then rebuilds
// the show's index and feed once.
func (s *Scanner) publishGroup(group []models.Episode) (ShowSummary, error) {
	summary := ShowSummary{
		UserID: group[0].OwnerUserID,
		ShowID: group[0].ShowID,
	}
	user, show, showImage, err := s.coordinator.resolveShow(summary.UserID, summary.ShowID)
	if err != nil {
		return summary, err
	}
	for i := range group {
		episode := &group[i]
		if err := s.coordinator.sites.EpisodePage(user, show, showImage, episode); err != nil {
			return summary, err
		}
		if err := s.episodes.Publish(episode); err != nil {
			return summary, err
		}
		summary.EpisodeIDs = append(summary.EpisodeIDs, episode.ID)
	}
	if err := s.coordinator.flushShow(user, show, showImage); err != nil {
		return summary, err
	}
	return summary, nil
}
