// Package common holds the small cross-cutting helpers: alias validation,
// HTML sanitization, guid generation and the ownership guard.
package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/models"
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// IsValidAlias reports whether alias is a non-empty URL-safe identifier.
func IsValidAlias(alias string) bool {
	return aliasPattern.MatchString(alias)
}

var htmlPolicy = bluemonday.UGCPolicy()

// CleanHTML strips markup that must not reach feed readers or public pages.
func CleanHTML(s string) string {
	return htmlPolicy.Sanitize(s)
}

// NewGUID returns a fresh opaque identifier usable as a storage key segment.
func NewGUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// VerifyOwnership confirms that entity is owned by userID. Every entity
// carries the owner id directly, so this never needs a repository lookup.
func VerifyOwnership(userID int64, entity models.Owned) error {
	if entity.Owner() != userID {
		return fmt.Errorf("user %d: %w", userID, apperr.ErrAccessNotAllowed)
	}
	return nil
}

// FormatDuration renders total seconds as h:mm:ss with unpadded hours,
// the duration form podcast directories expect.
func FormatDuration(totalSeconds int) string {
	h := totalSeconds / 3600
	m := totalSeconds % 3600 / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
