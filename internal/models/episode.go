package models

import "time"

// Episode is a row of the podcasts table as read by the feed.
type Episode struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Date          time.Time `db:"date"`
	ProgramNumber *int64    `db:"program_number"`
	DownloadURL   string    `db:"download_url"`
	FileSize      *int64    `db:"file_size"`
	MP3Duration   *float64  `db:"mp3_duration"`
	Duration      *float64  `db:"duration"`
	WordpressURL  *string   `db:"wordpress_url"`
	CoverImageURL *string   `db:"cover_image_url"`
}

// DurationSeconds returns the measured MP3 duration, falling back to the
// catalogued one, or zero when neither is known.
func (e Episode) DurationSeconds() float64 {
	if e.MP3Duration != nil {
		return *e.MP3Duration
	}
	if e.Duration != nil {
		return *e.Duration
	}
	return 0
}

// Length is the enclosure byte length.
func (e Episode) Length() int64 {
	if e.FileSize == nil {
		return 0
	}
	return *e.FileSize
}
