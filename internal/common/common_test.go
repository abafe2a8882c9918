package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/models"
)

func TestIsValidAlias(t *testing.T) {
	assert.True(t, IsValidAlias("someAlias01"))
	assert.True(t, IsValidAlias("some_Alias_01"))
	assert.True(t, IsValidAlias("1234"))
	assert.True(t, IsValidAlias("name"))
	assert.True(t, IsValidAlias("NAME"))

	assert.False(t, IsValidAlias(""))
	assert.False(t, IsValidAlias("some-alias-01"))
	assert.False(t, IsValidAlias("some alias"))
	assert.False(t, IsValidAlias("alias/01"))
}

func TestVerifyOwnership(t *testing.T) {
	episode := &models.Episode{ID: 11, OwnerUserID: 1}

	assert.NoError(t, VerifyOwnership(1, episode))
	assert.ErrorIs(t, VerifyOwnership(99, episode), apperr.ErrAccessNotAllowed)
}

func TestCleanHTML(t *testing.T) {
	assert.Equal(t, "<b>bold</b>", CleanHTML("<b>bold</b>"))
	assert.NotContains(t, CleanHTML(`<script>alert("x")</script>hello`), "script")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatDuration(0))
	assert.Equal(t, "0:00:09", FormatDuration(9))
	assert.Equal(t, "0:09:19", FormatDuration(559))
	assert.Equal(t, "12:12:09", FormatDuration(43929))
}

func TestNewGUID(t *testing.T) {
	a, b := NewGUID(), NewGUID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}
