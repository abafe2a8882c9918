// Package handlers wires the HTTP surface: authenticated episode/show/media
// management and the public feed endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hirogwa/highland/internal/apperr"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/episodes"
	"github.com/hirogwa/highland/internal/feed"
	"github.com/hirogwa/highland/internal/media"
	"github.com/hirogwa/highland/internal/middleware"
	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/sites"
	"github.com/hirogwa/highland/pkg/tasks"
)

type Handlers struct {
	store       *db.Store
	episodes    *episodes.Service
	media       *media.Service
	feed        *feed.Builder
	sites       *sites.Builder
	asynqClient tasks.TaskEnqueuer
}

func New(store *db.Store, episodeSvc *episodes.Service, mediaSvc *media.Service,
	feedBuilder *feed.Builder, siteBuilder *sites.Builder, asynqClient tasks.TaskEnqueuer) *Handlers {
	return &Handlers{
		store:       store,
		episodes:    episodeSvc,
		media:       mediaSvc,
		feed:        feedBuilder,
		sites:       siteBuilder,
		asynqClient: asynqClient,
	}
}

func requestUser(r *http.Request) *models.User {
	return r.Context().Value(middleware.UserContextKey).(*models.User)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses: missing entities
// are 404, foreign entities 403, malformed fields 400, incomplete episodes
// 422.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNoSuchEntity):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrAccessNotAllowed):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, apperr.ErrInvalidValue):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrValidation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
