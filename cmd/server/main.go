package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/hirogwa/highland/internal/config"
	"github.com/hirogwa/highland/internal/db"
	"github.com/hirogwa/highland/internal/episodes"
	"github.com/hirogwa/highland/internal/feed"
	"github.com/hirogwa/highland/internal/handlers"
	"github.com/hirogwa/highland/internal/media"
	"github.com/hirogwa/highland/internal/middleware"
	"github.com/hirogwa/highland/internal/publish"
	"github.com/hirogwa/highland/internal/sites"
	"github.com/hirogwa/highland/internal/storage"
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
	episodeSvc.SetNotifier(coordinator)
	mediaSvc := media.New(store, mediaStorage)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer asynqClient.Close()

	h := handlers.New(store, episodeSvc, mediaSvc, feedBuilder, siteBuilder, asynqClient)
	auth := middleware.NewAuth(store, []byte(cfg.JWTSecret))
	rateLimiter := middleware.NewRateLimiterMiddleware(rate.Limit(5), 10)

	r := mux.NewRouter()

	// Public endpoints: the feed and the stored artifacts.
	r.HandleFunc("/rss/{alias}", h.GetRSSFeed).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StorageRoot))))

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware, rateLimiter.Middleware)

	api.HandleFunc("/shows", h.CreateShow).Methods(http.MethodPost)
	api.HandleFunc("/shows", h.ListShows).Methods(http.MethodGet)
	api.HandleFunc("/shows/{showID}/episodes", h.CreateEpisode).Methods(http.MethodPost)
	api.HandleFunc("/shows/{showID}/episodes", h.ListEpisodes).Methods(http.MethodGet)
	api.HandleFunc("/shows/{showID}/episodes/preview", h.PreviewEpisode).Methods(http.MethodPost)
	api.HandleFunc("/episodes/{id}", h.GetEpisode).Methods(http.MethodGet)
	api.HandleFunc("/episodes/{id}", h.UpdateEpisode).Methods(http.MethodPut)
	api.HandleFunc("/episodes", h.DeleteEpisodes).Methods(http.MethodDelete)

	api.HandleFunc("/audios", h.PostAudio).Methods(http.MethodPost)
	api.HandleFunc("/audios", h.ListAudios).Methods(http.MethodGet)
	api.HandleFunc("/audios", h.DeleteAudios).Methods(http.MethodDelete)
	api.HandleFunc("/images", h.PostImage).Methods(http.MethodPost)
	api.HandleFunc("/images", h.ListImages).Methods(http.MethodGet)
	api.HandleFunc("/images", h.DeleteImages).Methods(http.MethodDelete)

	api.HandleFunc("/publish/scheduled", h.TriggerPublishScheduled).Methods(http.MethodPost)

	log.Printf("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
