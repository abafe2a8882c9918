package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hirogwa/highland/internal/media"
)

func (h *Handlers) PostAudio(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var params media.AudioParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	audio, err := h.media.RegisterAudio(user.ID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, audio)
}

func (h *Handlers) ListAudios(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	audios, err := h.media.ListAudios(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, audios)
}

func (h *Handlers) DeleteAudios(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var body struct {
		AudioIDs []int64 `json:"audio_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	results, err := h.media.DeleteAudios(user.ID, body.AudioIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse(results))
}

func (h *Handlers) PostImage(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var params media.ImageParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	image, err := h.media.RegisterImage(user.ID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, image)
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	images, err := h.media.ListImages(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *Handlers) DeleteImages(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var body struct {
		ImageIDs []int64 `json:"image_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	results, err := h.media.DeleteImages(user.ID, body.ImageIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse(results))
}

type deletedItem struct {
	ID         int64  `json:"id"`
	StorageErr string `json:"storage_error,omitempty"`
}

// deleteResponse surfaces per-item storage cleanup failures as warnings; the
// database deletes themselves already succeeded.
func deleteResponse(results []media.DeleteResult) []deletedItem {
	items := make([]deletedItem, 0, len(results))
	for _, r := range results {
		item := deletedItem{ID: r.ID}
		if r.StorageErr != nil {
			item.StorageErr = r.StorageErr.Error()
		}
		items = append(items, item)
	}
	return items
}
