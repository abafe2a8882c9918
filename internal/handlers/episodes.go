package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hirogwa/highland/internal/common"
	"github.com/hirogwa/highland/internal/episodes"
	"github.com/hirogwa/highland/internal/models"
	"github.com/hirogwa/highland/internal/sites"
)

func (h *Handlers) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	showID, err := strconv.ParseInt(mux.Vars(r)["showID"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	var params episodes.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	params.ShowID = showID

	episode, err := h.episodes.Create(user.ID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, episode)
}

func (h *Handlers) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	episodeID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid episode ID", http.StatusBadRequest)
		return
	}

	var params episodes.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	episode, err := h.episodes.Update(user.ID, episodeID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episode)
}

func (h *Handlers) GetEpisode(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	episodeID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid episode ID", http.StatusBadRequest)
		return
	}

	episode, err := h.episodes.Get(user.ID, episodeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episode)
}

func (h *Handlers) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	showID, err := strconv.ParseInt(mux.Vars(r)["showID"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid show ID", http.StatusBadRequest)
		return
	}
	publicOnly := r.URL.Query().Get("public") == "true"

	list, err := h.episodes.List(user.ID, showID, publicOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) DeleteEpisodes(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var body struct {
		EpisodeIDs []int64 `json:"episode_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.episodes.Delete(user.ID, body.EpisodeIDs); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// PreviewEpisode renders a transient episode page for in-progress edits.
// Nothing is persisted or uploaded.
func (h *Handlers) PreviewEpisode(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	showID, err := strconv.ParseInt(mux.Vars(r)["showID"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	var params sites.PreviewParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	show, err := h.store.GetShow(showID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := common.VerifyOwnership(user.ID, show); err != nil {
		writeError(w, err)
		return
	}
	var showImage *models.Image
	if show.ImageID != nil {
		showImage, err = h.store.GetImage(*show.ImageID)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	html, err := h.sites.PreviewEpisode(user, show, showImage, params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
