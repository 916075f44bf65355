package test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"popcasting-rss/internal/db"
)

// EpisodeColumns are the columns returned by the episodes query, in order.
var EpisodeColumns = []string{
	"id", "title", "date", "program_number", "download_url", "file_size",
	"mp3_duration", "duration", "wordpress_url", "cover_image_url",
}

// NewMockDB swaps db.DB for a sqlmock connection for the duration of the test.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	sqlxDB := sqlx.NewDb(mockDb, "sqlmock")

	originalDB := db.DB
	db.DB = sqlxDB
	t.Cleanup(func() {
		db.DB = originalDB
		mockDb.Close()
	})

	return sqlxDB, mock
}
