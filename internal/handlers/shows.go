package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/common"
	"github.com/hirogwa/highland/internal/models"
)

type showParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subtitle    string `json:"subtitle"`
	Language    string `json:"language"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Explicit    bool   `json:"explicit"`
	ImageID     *int64 `json:"image_id"`
	Alias       string `json:"alias"`
}

func (h *Handlers) CreateShow(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var params showParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if !common.IsValidAlias(params.Alias) {
		writeError(w, apperr.ErrInvalidValue)
		return
	}

	show, err := h.store.CreateShow(&models.Show{
		OwnerUserID: user.ID,
		Title:       params.Title,
		Description: params.Description,
		Subtitle:    params.Subtitle,
		Language:    params.Language,
		Author:      params.Author,
		Category:    params.Category,
		Explicit:    params.Explicit,
		ImageID:     params.ImageID,
		Alias:       params.Alias,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, show)
}

func (h *Handlers) ListShows(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	shows, err := h.store.ListShowsByUser(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shows)
}
