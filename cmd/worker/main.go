package main

import (
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/hirogwa/highland/internal/config"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/episodes"
	"github.com/hirogwa/highland/internal/feed"
	"github.com/hirogwa/highland/internal/publish"
	"github.com/hirogwa/highland/internal/sites"
	"github.com/hirogwa/highland/internal/storage"
	"github.com/hirogwa/highland/internal/worker"
	"github.com/hirogwa/highland/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	store := db.NewStore(database)

	mediaStorage := storage.NewLocal(cfg.StorageRoot)
	feedBuilder := feed.New(store, mediaStorage, cfg.BaseURL)
	siteBuilder := sites.New(store, mediaStorage, cfg.BaseURL)
	coordinator := publish.NewCoordinator(store, siteBuilder, feedBuilder)
	episodeSvc := episodes.New(store)
	scanner := publish.NewScanner(store, episodeSvc, coordinator)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			// The scan is a single-pass job; one at a time keeps the
			// per-show rebuilds from racing each other.
			Concurrency: 1,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				delay := 1 * time.Minute
				maxDelay := 30 * time.Minute

				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}

				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(scanner)
	mux.HandleFunc(tasks.TypePublishScheduled, taskHandler.HandlePublishScheduledTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
