// Package publish orchestrates artifact rebuilds after episode state
// changes: the coordinator for single-episode changes, the scanner for the
// batch promotion of scheduled episodes.
package publish

import (
	"log"
	"time"

	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/models"
)

// SiteUpdater and FeedUpdater are the two artifact builders. Implemented by
// sites.Builder and feed.Builder; mocked in tests.
type SiteUpdater interface {
	EpisodePage(user *models.User, show *models.Show, showImage *models.Image, episode *models.Episode) error
	ShowIndex(user *models.User, show *models.Show, showImage *models.Image) error
	UpdateFull(user *models.User, showID int64) error
}

type FeedUpdater interface {
	Update(user *models.User, showID int64) (string, error)
}

type Coordinator struct {
	store *db.Store
	sites SiteUpdater
	feed  FeedUpdater
	now   func() time.Time
}

func NewCoordinator(store *db.Store, sites SiteUpdater, feed FeedUpdater) *Coordinator {
	return &Coordinator{store: store, sites: sites, feed: feed, now: time.Now}
}

// Publish refreshes the public artifacts after a single episode change.
// No-op unless the episode is published. Episode page, then show index, then
// feed: by the time the widely-cached feed updates, the pages it links to
// exist.
func (c *Coordinator) Publish(episode *models.Episode) error {
	if episode.DraftStatus != models.StatusPublished {
		log.Printf("episode (user:%d, show:%d, id:%d) is not published. Ignoring.",
			episode.OwnerUserID, episode.ShowID, episode.ID)
		return nil
	}

	user, show, showImage, err := c.resolveShow(episode.OwnerUserID, episode.ShowID)
	if err != nil {
		return err
	}
	if err := c.sites.EpisodePage(user, show, showImage, episode); err != nil {
		return err
	}
	return c.flushShow(user, show, showImage)
}

// RebuildShow regenerates every artifact of the show from current state,
// purging pages of episodes that are no longer published. Used after
// deletions and as the lifecycle manager's rebuild hook.
func (c *Coordinator) RebuildShow(userID, showID int64) error {
	user, show, _, err := c.resolveShow(userID, showID)
	if err != nil {
		return err
	}
	if err := c.store.UpdateShowBuildDatetime(show.ID, c.now().UTC()); err != nil {
		return err
	}
	if err := c.sites.UpdateFull(user, show.ID); err != nil {
		return err
	}
	if _, err := c.feed.Update(user, show.ID); err != nil {
		return err
	}
	return nil
}

// flushShow stamps the show and rewrites its index and feed. Episode pages
// are assumed already current.
func (c *Coordinator) flushShow(user *models.User, show *models.Show, showImage *models.Image) error {
	if err := c.store.UpdateShowBuildDatetime(show.ID, c.now().UTC()); err != nil {
		return err
	}
	if err := c.sites.ShowIndex(user, show, showImage); err != nil {
		return err
	}
	if _, err := c.feed.Update(user, show.ID); err != nil {
		return err
	}
	log.Printf("published show:%d", show.ID)
	return nil
}

func (c *Coordinator) resolveShow(userID, showID int64) (*models.User, *models.Show, *models.Image, error) {
	user, err := c.store.GetUser(userID)
	if err != nil {
		return nil, nil, nil, err
	}
	show, err := c.store.GetShow(showID)
	if err != nil {
		return nil, nil, nil, err
	}
	var showImage *models.Image
	if show.ImageID != nil {
		showImage, err = c.store.GetImage(*show.ImageID)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return user, show, showImage, nil
}
