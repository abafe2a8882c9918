package publish

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/test"
)

// mockSites records builder calls in order; failShowID makes EpisodePage fail
// for that show.
type mockSites struct {
	calls      []string
	pageShows  []int64
	indexShows []int64
	failShowID int64
}

func (m *mockSites) EpisodePage(user *models.User, show *models.Show, showImage *models.Image, episode *models.Episode) error {
	if m.failShowID != 0 && show.ID == m.failShowID {
		return errors.New("render failed")
	}
	m.calls = append(m.calls, "page")
	m.pageShows = append(m.pageShows, show.ID)
	return nil
}

func (m *mockSites) ShowIndex(user *models.User, show *models.Show, showImage *models.Image) error {
	m.calls = append(m.calls, "index")
	m.indexShows = append(m.indexShows, show.ID)
	return nil
}

func (m *mockSites) UpdateFull(user *models.User, showID int64) error {
	m.calls = append(m.calls, "full")
	return nil
}

type mockFeed struct {
	updatedShows []int64
}

func (m *mockFeed) Update(user *models.User, showID int64) (string, error) {
	m.updatedShows = append(m.updatedShows, showID)
	return "feed_rss/show", nil
}

type mockPublisher struct {
	published []int64
}

func (m *mockPublisher) Publish(episode *models.Episode) error {
	episode.DraftStatus = models.StatusPublished
	m.published = append(m.published, episode.ID)
	return nil
}

var episodeColumns = []string{
	"id", "owner_user_id", "show_id", "title", "subtitle", "description",
	"audio_id", "image_id", "draft_status", "scheduled_datetime",
	"published_datetime", "explicit", "guid", "alias", "created_at", "updated_at",
}

func dueEpisodeRows(episodes ...*models.Episode) *sqlmock.Rows {
	rows := sqlmock.NewRows(episodeColumns)
	for _, e := range episodes {
		rows.AddRow(e.ID, e.OwnerUserID, e.ShowID, e.Title, e.Subtitle, e.Description,
			e.AudioID, e.ImageID, e.DraftStatus, e.ScheduledDatetime,
			e.PublishedDatetime, e.Explicit, e.Guid, e.Alias, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func dueEpisode(id, showID int64, scheduledAt time.Time) *models.Episode {
	return &models.Episode{
		ID: id, OwnerUserID: 1, ShowID: showID,
		Title: "title", Description: "desc",
		DraftStatus:       models.StatusScheduled,
		ScheduledDatetime: &scheduledAt,
		Guid:              "g", Alias: "1",
	}
}

func expectUser(mock sqlmock.Sqlmock, id int64) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "email", "identity_id", "created_at", "updated_at"}).
			AddRow(id, "tester", "Tester", "tester@example.com", "id-abc", now, now))
}

func expectShow(mock sqlmock.Sqlmock, id int64) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM shows WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_user_id", "title", "description", "subtitle", "language",
			"author", "category", "explicit", "image_id", "alias",
			"last_build_datetime", "created_at", "updated_at"}).
			AddRow(id, int64(1), "My Show", "about", "sub", "en", "author", "Technology",
				false, nil, "myshow", now, now, now))
}

func expectBuildStamp(mock sqlmock.Sqlmock, showID int64) {
	mock.ExpectExec(`UPDATE shows\s+SET last_build_datetime`).
		WithArgs(sqlmock.AnyArg(), showID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestPublishScheduledGroupsPerShow(t *testing.T) {
	store, mock := test.NewMockStore(t)
	sites := &mockSites{}
	feed := &mockFeed{}
	publisher := &mockPublisher{}
	scanner := NewScanner(store, publisher, NewCoordinator(store, sites, feed))

	past := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(`SELECT \* FROM episodes\s+WHERE draft_status = \$1 AND scheduled_datetime <= \$2`).
		WithArgs(models.StatusScheduled, sqlmock.AnyArg()).
		WillReturnRows(dueEpisodeRows(
			dueEpisode(201, 101, past),
			dueEpisode(202, 101, past),
			dueEpisode(203, 102, past)))
	expectUser(mock, 1)
	expectShow(mock, 101)
	expectBuildStamp(mock, 101)
	expectUser(mock, 1)
	expectShow(mock, 102)
	expectBuildStamp(mock, 102)

	summaries, err := scanner.PublishScheduled()

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, ShowSummary{UserID: 1, ShowID: 101, EpisodeIDs: []int64{201, 202}}, summaries[0])
	assert.Equal(t, ShowSummary{UserID: 1, ShowID: 102, EpisodeIDs: []int64{203}}, summaries[1])
	assert.Equal(t, []int64{201, 202, 203}, publisher.published)
	// One index and one feed rebuild per show, not per episode.
	assert.Equal(t, []int64{101, 102}, sites.indexShows)
	assert.Equal(t, []int64{101, 102}, feed.updatedShows)
	assert.Equal(t, []int64{101, 101, 102}, sites.pageShows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishScheduledNothingDue(t *testing.T) {
	store, mock := test.NewMockStore(t)
	scanner := NewScanner(store, &mockPublisher{}, NewCoordinator(store, &mockSites{}, &mockFeed{}))

	mock.ExpectQuery(`SELECT \* FROM episodes\s+WHERE draft_status = \$1 AND scheduled_datetime <= \$2`).
		WithArgs(models.StatusScheduled, sqlmock.AnyArg()).
		WillReturnRows(dueEpisodeRows())

	summaries, err := scanner.PublishScheduled()

	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishScheduledContinuesAfterShowFailure(t *testing.T) {
	store, mock := test.NewMockStore(t)
	sites := &mockSites{failShowID: 101}
	feed := &mockFeed{}
	publisher := &mockPublisher{}
	scanner := NewScanner(store, publisher, NewCoordinator(store, sites, feed))

	past := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(`SELECT \* FROM episodes\s+WHERE draft_status = \$1 AND scheduled_datetime <= \$2`).
		WithArgs(models.StatusScheduled, sqlmock.AnyArg()).
		WillReturnRows(dueEpisodeRows(
			dueEpisode(201, 101, past),
			dueEpisode(203, 102, past)))
	expectUser(mock, 1)
	expectShow(mock, 101)
	expectUser(mock, 1)
	expectShow(mock, 102)
	expectBuildStamp(mock, 102)

	summaries, err := scanner.PublishScheduled()

	// The failing show is skipped; the scan still finishes the other one.
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(102), summaries[0].ShowID)
	assert.Equal(t, []int64{203}, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}
