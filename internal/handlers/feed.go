package handlers

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"popcasting-rss/internal/db"
	"popcasting-rss/internal/feed"
)

func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path})

	episodes, err := db.GetPublishedEpisodes(ctx)
	if err != nil {
		logger.WithError(err).Error("Error getting episodes")
		http.Error(w, "Feed error", http.StatusInternalServerError)
		return
	}

	var opts []feed.Option
	if h.tracklist {
		ids := make([]int64, 0, len(episodes))
		for _, episode := range episodes {
			ids = append(ids, episode.ID)
		}

		tracklists, err := db.GetSongsByEpisodeIDs(ctx, ids)
		if err != nil {
			logger.WithError(err).Error("Error getting tracklists")
			http.Error(w, "Feed error", http.StatusInternalServerError)
			return
		}
		opts = append(opts, feed.WithTracklists(tracklists))
	}

	rss := feed.GenerateRSS(h.channel, episodes, opts...)
	logger.WithField("episodes", len(episodes)).Debug("Feed rendered")

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", h.cacheControl())
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (h *Handlers) cacheControl() string {
	age := int(h.cacheMaxAge.Seconds())
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d", age, age)
}
