// Package sites renders the public static pages for a show: one index page
// and one page per published episode.
package sites

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"

	"github.com/hirogwa/highland/internal/common"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/storage"
)

const (
	FolderSites = "sites"
	ContentType = "text/html; charset=utf-8"

	// PreviewAlias marks a transient episode rendered for preview; pages
	// carrying it must never be uploaded.
	PreviewAlias = "_preview"
)

//go:embed templates/*.html
var templateFS embed.FS

type Builder struct {
	store     *db.Store
	storage   storage.MediaStorage
	baseURL   string
	templates *template.Template
}

func New(store *db.Store, mediaStorage storage.MediaStorage, baseURL string) *Builder {
	return &Builder{
		store:     store,
		storage:   mediaStorage,
		baseURL:   baseURL,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

type showPage struct {
	Show     *models.Show
	ImageURL string
	Episodes []episodeLink
}

type episodeLink struct {
	Title string
	URL   string
}

type episodePage struct {
	Show        *models.Show
	Episode     *models.Episode
	Description template.HTML
	ImageURL    string
	AudioURL    string
	Duration    string
	SizeMB      string
}

// ShowHTML renders the show index listing the given episodes.
func (b *Builder) ShowHTML(user *models.User, show *models.Show, showImage *models.Image, episodes []models.Episode) (string, error) {
	page := showPage{Show: show}
	if showImage != nil {
		page.ImageURL = common.ImageURL(b.baseURL, user, showImage)
	}
	for i := range episodes {
		page.Episodes = append(page.Episodes, episodeLink{
			Title: episodes[i].Title,
			URL:   common.EpisodeURL(b.baseURL, show, &episodes[i]),
		})
	}
	var buf bytes.Buffer
	if err := b.templates.ExecuteTemplate(&buf, "show.html", page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EpisodeHTML renders a single episode page. An episode without audio gets
// the degraded placeholder (zero duration and size, no audio URL) so drafts
// can be previewed; that path is not an error.
func (b *Builder) EpisodeHTML(user *models.User, show *models.Show, showImage *models.Image, episode *models.Episode) (string, error) {
	page := episodePage{
		Show:        show,
		Episode:     episode,
		Description: template.HTML(common.CleanHTML(episode.Description)),
		Duration:    common.FormatDuration(0),
		SizeMB:      "0.00",
	}

	switch {
	case episode.ImageID != nil:
		image, err := b.store.GetImage(*episode.ImageID)
		if err != nil {
			return "", err
		}
		page.ImageURL = common.ImageURL(b.baseURL, user, image)
	case showImage != nil:
		page.ImageURL = common.ImageURL(b.baseURL, user, showImage)
	}

	if episode.AudioID != nil {
		audio, err := b.store.GetAudio(*episode.AudioID)
		if err != nil {
			return "", err
		}
		page.AudioURL = common.AudioURL(b.baseURL, user, audio)
		page.Duration = common.FormatDuration(audio.Duration)
		page.SizeMB = fmt.Sprintf("%.2f", float64(audio.Length)/(1024*1024))
	}

	var buf bytes.Buffer
	if err := b.templates.ExecuteTemplate(&buf, "episode.html", page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EpisodePage renders and uploads the public page for one episode.
func (b *Builder) EpisodePage(user *models.User, show *models.Show, showImage *models.Image, episode *models.Episode) error {
	html, err := b.EpisodeHTML(user, show, showImage, episode)
	if err != nil {
		return err
	}
	key := path.Join(show.Alias, episode.Alias+".html")
	return b.storage.Upload([]byte(html), FolderSites, key, ContentType)
}

// ShowIndex renders and uploads the show's index page over the currently
// published episodes.
func (b *Builder) ShowIndex(user *models.User, show *models.Show, showImage *models.Image) error {
	episodes, err := b.store.ListEpisodesByShow(show.ID, true)
	if err != nil {
		return err
	}
	html, err := b.ShowHTML(user, show, showImage, episodes)
	if err != nil {
		return err
	}
	key := path.Join(show.Alias, "index.html")
	return b.storage.Upload([]byte(html), FolderSites, key, ContentType)
}

// UpdateFull wipes the show's page folder and regenerates everything, so
// pages of episodes that are no longer published disappear. Episode pages go
// out before the index; readers following the index never hit a missing
// page.
func (b *Builder) UpdateFull(user *models.User, showID int64) error {
	show, err := b.store.GetShow(showID)
	if err != nil {
		return err
	}
	var showImage *models.Image
	if show.ImageID != nil {
		showImage, err = b.store.GetImage(*show.ImageID)
		if err != nil {
			return err
		}
	}
	episodes, err := b.store.ListEpisodesByShow(showID, true)
	if err != nil {
		return err
	}

	if err := b.storage.DeleteFolder(path.Join(FolderSites, show.Alias)); err != nil {
		return err
	}
	for i := range episodes {
		if err := b.EpisodePage(user, show, showImage, &episodes[i]); err != nil {
			return err
		}
	}
	html, err := b.ShowHTML(user, show, showImage, episodes)
	if err != nil {
		return err
	}
	return b.storage.Upload([]byte(html), FolderSites, path.Join(show.Alias, "index.html"), ContentType)
}

// PreviewEpisode renders a transient, unpersisted episode so in-progress
// edits can be previewed. Nothing is written to storage.
func (b *Builder) PreviewEpisode(user *models.User, show *models.Show, showImage *models.Image, p PreviewParams) (string, error) {
	episode := &models.Episode{
		OwnerUserID: user.ID,
		ShowID:      show.ID,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		AudioID:     p.AudioID,
		ImageID:     p.ImageID,
		Alias:       PreviewAlias,
	}
	return b.EpisodeHTML(user, show, showImage, episode)
}

type PreviewParams struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	AudioID     *int64 `json:"audio_id"`
	ImageID     *int64 `json:"image_id"`
}
