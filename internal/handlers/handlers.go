package handlers

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"popcasting-rss/internal/db"
	"popcasting-rss/internal/feed"
)

type Handlers struct {
	channel     feed.Channel
	cacheMaxAge time.Duration
	tracklist   bool
}

// New builds the handlers. channel is rendered into every feed, cacheMaxAge
// sets the shared-cache freshness and tracklist enables tracklists in item
// descriptions.
func New(channel feed.Channel, cacheMaxAge time.Duration, tracklist bool) *Handlers {
	return &Handlers{
		channel:     channel,
		cacheMaxAge: cacheMaxAge,
		tracklist:   tracklist,
	}
}

// Preflight answers CORS preflight requests without touching the database.
func (h *Handlers) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(r.Context()); err != nil {
		log.WithError(err).Error("Database ping failed")
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
