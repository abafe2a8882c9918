package common

import (
	"fmt"

	"github.com/hirogwa/highland/internal/models"
)

// Public URL layout: shows and episodes live under their aliases, media
// artifacts under /static keyed by username and guid.

func ShowURL(baseURL string, show *models.Show) string {
	return fmt.Sprintf("%s/%s", baseURL, show.Alias)
}

func EpisodeURL(baseURL string, show *models.Show, episode *models.Episode) string {
	return fmt.Sprintf("%s/%s/%s", baseURL, show.Alias, episode.Alias)
}

func AudioURL(baseURL string, user *models.User, audio *models.Audio) string {
	return fmt.Sprintf("%s/static/audio/%s/%s", baseURL, user.Username, audio.Guid)
}

func ImageURL(baseURL string, user *models.User, image *models.Image) string {
	return fmt.Sprintf("%s/static/image/%s/%s", baseURL, user.Username, image.Guid)
}
