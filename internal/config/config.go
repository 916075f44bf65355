package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
	"popcasting-rss/internal/feed"
)

// Config is the process configuration read from the environment.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL, required"`
	Port        string `env:"PORT, default=8080"`

	FeedPath    string        `env:"FEED_PATH, default=/rss"`
	CacheMaxAge time.Duration `env:"CACHE_MAX_AGE, default=300s"`
	Tracklist   bool          `env:"FEED_TRACKLIST, default=false"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS, default=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST, default=10"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For.
	// Only enable it behind a proxy that overwrites the header.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS, default=false"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=text"`

	Channel ChannelConfig `env:", prefix=CHANNEL_"`
}

// ChannelConfig holds the overridable podcast metadata.
type ChannelConfig struct {
	Title         string `env:"TITLE, default=Popcasting"`
	Link          string `env:"LINK, default=https://popcastingpop.com/"`
	Description   string `env:"DESCRIPTION, default=Pódcast de música en español, desde 2005."`
	Language      string `env:"LANGUAGE, default=es-es"`
	ImageSmall    string `env:"IMAGE_SMALL, default=https://cdn.popcastingpop.com/series/logo-1400.jpg"`
	ImageLarge    string `env:"IMAGE_LARGE, default=https://cdn.popcastingpop.com/series/logo-3000.jpg"`
	Explicit      bool   `env:"EXPLICIT, default=false"`
	Author        string `env:"AUTHOR, default=Popcasting"`
	Category      string `env:"CATEGORY, default=Music"`
	NewFeedURL    string `env:"NEW_FEED_URL"`
	GUIDNamespace string `env:"GUID_NAMESPACE, default=popcasting"`
	ItemLinkBase  string `env:"ITEM_LINK_BASE, default=https://popcastingpop.com/episodios/"`
}

// Load reads a .env file when present and then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded")
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}
	return cfg, nil
}

// FeedChannel is the immutable channel metadata handed to the feed generator.
func (c Config) FeedChannel() feed.Channel {
	return feed.Channel{
		Title:         c.Channel.Title,
		Link:          c.Channel.Link,
		Description:   c.Channel.Description,
		Language:      c.Channel.Language,
		ImageSmall:    c.Channel.ImageSmall,
		ImageLarge:    c.Channel.ImageLarge,
		Explicit:      c.Channel.Explicit,
		Author:        c.Channel.Author,
		Category:      c.Channel.Category,
		NewFeedURL:    c.Channel.NewFeedURL,
		GUIDNamespace: c.Channel.GUIDNamespace,
		ItemLinkBase:  c.Channel.ItemLinkBase,
	}
}

// SetupLogging configures the global logrus logger.
func (c Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	switch c.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
