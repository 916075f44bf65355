package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"popcasting-rss/internal/models"
)

var episodeColumns = []string{
	"id",
	"title",
	"date",
	"program_number",
	"download_url",
	"file_size",
	"mp3_duration",
	"duration",
	"wordpress_url",
	"cover_image_url",
}

// GetPublishedEpisodes returns every episode with a download URL, newest first.
func GetPublishedEpisodes(ctx context.Context) ([]models.Episode, error) {
	query, args, err := psql.
		Select(episodeColumns...).
		From("podcasts").
		Where(sq.NotEq{"download_url": nil}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build episodes query: %w", err)
	}

	var episodes []models.Episode
	if err := DB.SelectContext(ctx, &episodes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select episodes: %w", err)
	}
	return episodes, nil
}
