package worker

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"github.com/hirogwa/highland/internal/publish"
)

// ScheduledPublisher runs one scan pass. Implemented by publish.Scanner,
// and can be mocked for testing.
type ScheduledPublisher interface {
	PublishScheduled() ([]publish.ShowSummary, error)
}

type TaskHandler struct {
	scanner ScheduledPublisher
}

func NewTaskHandler(scanner ScheduledPublisher) *TaskHandler {
	return &TaskHandler{scanner: scanner}
}

// HandlePublishScheduledTask promotes due scheduled episodes and rebuilds
// the affected shows' artifacts.
func (h *TaskHandler) HandlePublishScheduledTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Publishing scheduled episodes...")

	summaries, err := h.scanner.PublishScheduled()
	if err != nil {
		return err
	}

	for _, s := range summaries {
		log.Printf("published show:%d (user:%d, episodes:%v)", s.ShowID, s.UserID, s.EpisodeIDs)
	}
	log.Printf("Finished publishing scheduled episodes (%d shows affected).", len(summaries))
	return nil
}
