package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hirogwa/highland/internal/feed"
)

// GetRSSFeed serves the show's podcast feed at its public alias. The feed is
// rendered from current state, so it never lags behind the stored artifact.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	alias := mux.Vars(r)["alias"]

	show, err := h.store.GetShowByAlias(alias)
	if err != nil {
		http.Error(w, "Show not found", http.StatusNotFound)
		return
	}
	user, err := h.store.GetUser(show.OwnerUserID)
	if err != nil {
		writeError(w, err)
		return
	}

	rss, err := h.feed.Generate(user, show)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", feed.ContentType)
	w.Write(rss)
}
