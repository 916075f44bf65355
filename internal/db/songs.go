package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"popcasting-rss/internal/models"
)

// GetSongsByEpisodeIDs returns the tracklists of the given episodes keyed by
// episode id, each in playlist order.
func GetSongsByEpisodeIDs(ctx context.Context, ids []int64) (map[int64][]models.Song, error) {
	tracklists := make(map[int64][]models.Song, len(ids))
	if len(ids) == 0 {
		return tracklists, nil
	}

	query, args, err := psql.
		Select("id", "podcast_id", "position", "artist", "title").
		From("songs").
		Where(sq.Eq{"podcast_id": ids}).
		OrderBy("podcast_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build songs query: %w", err)
	}

	var songs []models.Song
	if err := DB.SelectContext(ctx, &songs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select songs: %w", err)
	}

	for _, song := range songs {
		tracklists[song.PodcastID] = append(tracklists[song.PodcastID], song)
	}
	return tracklists, nil
}
