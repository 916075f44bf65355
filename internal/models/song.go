package models

// Song is one entry of an episode's tracklist.
type Song struct {
	ID        int64  `db:"id"`
	PodcastID int64  `db:"podcast_id"`
	Position  *int   `db:"position"`
	Artist    string `db:"artist"`
	Title     string `db:"title"`
}
