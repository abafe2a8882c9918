// Package feed renders a show's published episodes as a podcast RSS
// document and pushes it to object storage.
package feed

import (
	"fmt"
	"path"

	"github.com/eduncan911/podcast"

	"github.com/hirogwa/highland/internal/common"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/storage"
)

const (
	FolderRSS   = "feed_rss"
	ContentType = "application/rss+xml"
)

type Builder struct {
	store   *db.Store
	storage storage.MediaStorage
	baseURL string
}

func New(store *db.Store, mediaStorage storage.MediaStorage, baseURL string) *Builder {
	return &Builder{store: store, storage: mediaStorage, baseURL: baseURL}
}

// Update regenerates the show's feed and uploads it under the show's alias.
// Returns the storage location of the artifact.
func (b *Builder) Update(user *models.User, showID int64) (string, error) {
	show, err := b.store.GetShow(showID)
	if err != nil {
		return "", err
	}
	data, err := b.Generate(user, show)
	if err != nil {
		return "", err
	}
	if err := b.storage.Upload(data, FolderRSS, show.Alias, ContentType); err != nil {
		return "", err
	}
	return path.Join(FolderRSS, show.Alias), nil
}

// Generate renders the RSS 2.0 + iTunes namespace document for the show's
// published episodes, newest first. A published episode whose audio cannot
// be resolved fails the whole build; a feed item without a working enclosure
// would break resolution for every subscriber.
func (b *Builder) Generate(user *models.User, show *models.Show) ([]byte, error) {
	lastBuild := show.LastBuildDatetime
	p := podcast.New(show.Title, common.ShowURL(b.baseURL, show), show.Description, nil, &lastBuild)
	p.Language = show.Language
	p.IAuthor = show.Author
	p.AddCategory(show.Category, nil)
	p.IExplicit = explicitTag(show.Explicit)
	p.IOwner = &podcast.Author{Name: user.Name, Email: user.Email}
	p.ISubtitle = show.Subtitle
	p.AddSummary(show.Description)

	var showImage *models.Image
	if show.ImageID != nil {
		image, err := b.store.GetImage(*show.ImageID)
		if err != nil {
			return nil, err
		}
		showImage = image
		p.AddImage(common.ImageURL(b.baseURL, user, image))
	}

	episodes, err := b.store.ListEpisodesByShow(show.ID, true)
	if err != nil {
		return nil, err
	}
	for i := range episodes {
		episode := &episodes[i]
		if episode.AudioID == nil {
			return nil, fmt.Errorf("published episode %d has no audio", episode.ID)
		}
		audio, err := b.store.GetAudio(*episode.AudioID)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", episode.ID, err)
		}

		item := podcast.Item{
			Title:       episode.Title,
			Link:        common.EpisodeURL(b.baseURL, show, episode),
			Description: common.CleanHTML(episode.Description),
			GUID:        episode.Guid,
		}
		pubDate := episode.UpdatedAt
		if pubDate.IsZero() {
			pubDate = episode.CreatedAt
		}
		item.AddPubDate(&pubDate)
		item.AddEnclosure(common.AudioURL(b.baseURL, user, audio), enclosureType(audio.Type), audio.Length)
		item.IDuration = common.FormatDuration(audio.Duration)
		item.IAuthor = show.Author
		item.IExplicit = explicitTag(episode.Explicit)
		item.ISubtitle = episode.Subtitle

		imageURL, err := b.episodeImageURL(user, episode, showImage)
		if err != nil {
			return nil, err
		}
		if imageURL != "" {
			item.AddImage(imageURL)
		}

		if _, err := p.AddItem(item); err != nil {
			return nil, err
		}
	}

	return p.Bytes(), nil
}

func (b *Builder) episodeImageURL(user *models.User, episode *models.Episode, showImage *models.Image) (string, error) {
	if episode.ImageID != nil {
		image, err := b.store.GetImage(*episode.ImageID)
		if err != nil {
			return "", err
		}
		return common.ImageURL(b.baseURL, user, image), nil
	}
	if showImage != nil {
		return common.ImageURL(b.baseURL, user, showImage), nil
	}
	return "", nil
}

func explicitTag(explicit bool) string {
	if explicit {
		return "yes"
	}
	return "no"
}

func enclosureType(mimeType string) podcast.EnclosureType {
	switch mimeType {
	case "audio/x-m4a", "audio/m4a", "audio/mp4":
		return podcast.M4A
	default:
		return podcast.MP3
	}
}
