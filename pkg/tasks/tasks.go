package tasks

import (
	"github.com/hibiken/asynq"
)

const (
	TypePublishScheduled = "episodes:publish_scheduled"
)

// NewPublishScheduledTask triggers one pass of the scheduled-publish
// scanner. The task carries no payload; the scanner reads current state.
func NewPublishScheduledTask() (*asynq.Task, error) {
	return asynq.NewTask(TypePublishScheduled, nil), nil
}
