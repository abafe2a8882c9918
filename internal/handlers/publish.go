package handlers

import (
	"log"
	"net/http"

	"github.com/hirogwa/highland/pkg/tasks"
)

// TriggerPublishScheduled enqueues one scan pass outside the recurring
// schedule, e.g. to retry after a failed rebuild.
func (h *Handlers) TriggerPublishScheduled(w http.ResponseWriter, r *http.Request) {
	task, err := tasks.NewPublishScheduledTask()
	if err != nil {
		log.Printf("Error creating task: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if _, err := h.asynqClient.Enqueue(task); err != nil {
		log.Printf("Error enqueuing task: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
