package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"popcasting-rss/internal/config"
	"popcasting-rss/internal/db"
	"popcasting-rss/internal/handlers"
	"popcasting-rss/internal/middleware"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.SetupLogging(); err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}

	db.InitDB(cfg.DatabaseURL)
	defer db.DB.Close()

	h := handlers.New(cfg.FeedChannel(), cfg.CacheMaxAge, cfg.Tracklist)
	limiter := middleware.NewRateLimiterMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(h, limiter, cfg.FeedPath, cfg.TrustProxyHeaders),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// newRouter serves the feed on feedPath and on the root path. With trustProxy
// the client address is taken from the forwarding headers.
func newRouter(h *handlers.Handlers, limiter *middleware.RateLimiterMiddleware, feedPath string, trustProxy bool) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.AccessLog)

	paths := []string{"/"}
	if feedPath != "/" {
		paths = append(paths, feedPath)
	}

	feedHandler := limiter.Middleware(http.HandlerFunc(h.GetRSSFeed))
	for _, path := range paths {
		r.Handle(path, feedHandler).Methods(http.MethodGet, http.MethodHead)
		r.HandleFunc(path, h.Preflight).Methods(http.MethodOptions)
	}
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	var handler http.Handler = middleware.CORS(r)
	if trustProxy {
		handler = gorillahandlers.ProxyHeaders(handler)
	}

	recovery := gorillahandlers.RecoveryHandler(gorillahandlers.RecoveryLogger(log.StandardLogger()))
	return recovery(handler)
}
