package feed

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"popcasting-rss/internal/models"
)

var testChannel = Channel{
	Title:         "Popcasting",
	Link:          "https://popcastingpop.com/",
	Description:   "Pódcast de música en español, desde 2005.",
	Language:      "es-es",
	ImageSmall:    "https://cdn.popcastingpop.com/series/logo-1400.jpg",
	ImageLarge:    "https://cdn.popcastingpop.com/series/logo-3000.jpg",
	Author:        "Popcasting",
	Category:      "Music",
	GUIDNamespace: "popcasting",
	ItemLinkBase:  "https://popcastingpop.com/episodios/",
}

var entityRef = regexp.MustCompile(`^&(amp|lt|gt|quot|apos|#[0-9]+|#x[0-9a-fA-F]+);`)

func ptr[T any](v T) *T {
	return &v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// assertEntities fails if any & in s does not start an entity reference.
func assertEntities(t *testing.T, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if s[i] == '&' {
			assert.Regexp(t, entityRef, s[i:], "bare ampersand at %d in %q", i, s)
		}
	}
}

// assertWellFormed walks every token of doc with encoding/xml.
func assertWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func parse(t *testing.T, doc string) *gofeed.Feed {
	t.Helper()
	parsed, err := gofeed.NewParser().ParseString(doc)
	require.NoError(t, err)
	return parsed
}

func TestGenerateRSS(t *testing.T) {
	episodes := []models.Episode{
		{
			ID:            481,
			Title:         "Popcasting 481",
			Date:          day(2025, 2, 1),
			ProgramNumber: ptr(int64(481)),
			DownloadURL:   "https://cdn.popcastingpop.com/481.mp3",
			FileSize:      ptr(int64(52428800)),
			MP3Duration:   ptr(3725.0),
			Duration:      ptr(10.0),
			WordpressURL:  ptr("https://popcastingpop.com/2025/02/01/popcasting481/"),
		},
		{
			ID:          480,
			Title:       "Popcasting 480",
			Date:        day(2025, 1, 1),
			DownloadURL: "https://cdn.popcastingpop.com/480.mp3",
			Duration:    ptr(61.9),
		},
	}

	doc := GenerateRSS(testChannel, episodes)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"`)
	assert.Contains(t, doc, `xmlns:podcast="https://podcastindex.org/namespace/1.0"`)
	assertWellFormed(t, doc)

	parsed := parse(t, doc)
	assert.Equal(t, "Popcasting", parsed.Title)
	assert.Equal(t, "es-es", parsed.Language)
	assert.Equal(t, testChannel.Description, parsed.Description)
	require.NotNil(t, parsed.Image)
	assert.Equal(t, testChannel.ImageSmall, parsed.Image.URL)
	require.NotNil(t, parsed.ITunesExt)
	assert.Equal(t, "Popcasting", parsed.ITunesExt.Author)
	assert.Equal(t, testChannel.ImageLarge, parsed.ITunesExt.Image)
	assert.Equal(t, "false", parsed.ITunesExt.Explicit)
	require.Len(t, parsed.ITunesExt.Categories, 1)
	assert.Equal(t, "Music", parsed.ITunesExt.Categories[0].Text)

	require.Len(t, parsed.Items, 2)

	first := parsed.Items[0]
	assert.Equal(t, "Popcasting 481", first.Title)
	assert.Equal(t, "https://popcastingpop.com/episodios/481", first.Link)
	assert.Equal(t, "https://popcastingpop.com/2025/02/01/popcasting481/", first.GUID)
	assert.Equal(t, "Sat, 01 Feb 2025 18:00:00 +0000", first.Published)
	assert.Equal(t, "Popcasting 481", first.Description)
	require.Len(t, first.Enclosures, 1)
	assert.Equal(t, "https://cdn.popcastingpop.com/481.mp3", first.Enclosures[0].URL)
	assert.Equal(t, "52428800", first.Enclosures[0].Length)
	assert.Equal(t, "audio/mpeg", first.Enclosures[0].Type)
	require.NotNil(t, first.ITunesExt)
	assert.Equal(t, "01:02:05", first.ITunesExt.Duration)
	assert.Equal(t, "481", first.ITunesExt.Episode)

	second := parsed.Items[1]
	assert.Equal(t, "popcasting-480", second.GUID)
	assert.Equal(t, "Wed, 01 Jan 2025 18:00:00 +0000", second.Published)
	require.Len(t, second.Enclosures, 1)
	assert.Equal(t, "0", second.Enclosures[0].Length)
	require.NotNil(t, second.ITunesExt)
	assert.Equal(t, "00:01:01", second.ITunesExt.Duration)
	assert.Equal(t, "", second.ITunesExt.Episode)

	assert.Contains(t, doc, `<guid isPermaLink="false">popcasting-480</guid>`)
	assert.Contains(t, doc, `<itunes:episode></itunes:episode>`)
}

func TestGenerateRSSKeepsOrder(t *testing.T) {
	episodes := []models.Episode{
		{ID: 2, Title: "February", Date: day(2025, 2, 1), DownloadURL: "https://cdn.example.com/2.mp3"},
		{ID: 1, Title: "January", Date: day(2025, 1, 1), DownloadURL: "https://cdn.example.com/1.mp3"},
	}

	doc := GenerateRSS(testChannel, episodes)

	feb := strings.Index(doc, "<title>February</title>")
	jan := strings.Index(doc, "<title>January</title>")
	require.NotEqual(t, -1, feb)
	require.NotEqual(t, -1, jan)
	assert.Less(t, feb, jan)
}

func TestGenerateRSSEscapesTitle(t *testing.T) {
	title := `Tom & Jerry <b>live</b> &amp; more </title><x>`
	episodes := []models.Episode{
		{ID: 7, Title: title, Date: day(2025, 3, 1), DownloadURL: "https://cdn.example.com/7.mp3"},
	}

	doc := GenerateRSS(testChannel, episodes)
	assertWellFormed(t, doc)

	m := regexp.MustCompile(`(?s)<item>\s*<title>(.*?)</title>`).FindStringSubmatch(doc)
	require.Len(t, m, 2)
	text := m[1]
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, ">")
	assertEntities(t, text)

	parsed := parse(t, doc)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, title, parsed.Items[0].Title)
}

func TestGenerateRSSEscapesEnclosureURL(t *testing.T) {
	url := `https://cdn.example.com/get?id=7&name="special"&x=<y>`
	episodes := []models.Episode{
		{ID: 7, Title: "Seven", Date: day(2025, 3, 1), DownloadURL: url},
	}

	doc := GenerateRSS(testChannel, episodes)
	assertWellFormed(t, doc)

	m := regexp.MustCompile(`<enclosure url="([^"]*)"`).FindStringSubmatch(doc)
	require.Len(t, m, 2)
	attr := m[1]
	assert.NotContains(t, attr, `"`)
	assertEntities(t, attr)

	parsed := parse(t, doc)
	require.Len(t, parsed.Items, 1)
	require.Len(t, parsed.Items[0].Enclosures, 1)
	assert.Equal(t, url, parsed.Items[0].Enclosures[0].URL)
}

func TestGenerateRSSWithoutDuration(t *testing.T) {
	episodes := []models.Episode{
		{ID: 9, Title: "Nine", Date: day(2024, 12, 24), DownloadURL: "https://cdn.example.com/9.mp3"},
	}

	doc := GenerateRSS(testChannel, episodes)

	assert.Contains(t, doc, "<itunes:duration>00:00:00</itunes:duration>")
	assert.Contains(t, doc, `<guid isPermaLink="false">popcasting-9</guid>`)
	assert.Contains(t, doc, `length="0"`)
}

func TestGenerateRSSDescriptionCDATA(t *testing.T) {
	title := "Cover of <Ziggy> & co ]]> still safe"
	episodes := []models.Episode{
		{ID: 3, Title: title, Date: day(2025, 1, 1), DownloadURL: "https://cdn.example.com/3.mp3"},
	}

	doc := GenerateRSS(testChannel, episodes)
	assertWellFormed(t, doc)

	var rss struct {
		Items []struct {
			Description string `xml:"description"`
		} `xml:"channel>item"`
	}
	require.NoError(t, xml.Unmarshal([]byte(doc), &rss))
	require.Len(t, rss.Items, 1)
	assert.Equal(t, title, rss.Items[0].Description)
}

func TestGenerateRSSWithTracklists(t *testing.T) {
	episodes := []models.Episode{
		{ID: 1, Title: "Popcasting 001", Date: day(2005, 5, 1), DownloadURL: "https://cdn.example.com/1.mp3"},
		{ID: 2, Title: "Popcasting 002", Date: day(2005, 4, 1), DownloadURL: "https://cdn.example.com/2.mp3"},
	}
	tracklists := map[int64][]models.Song{
		1: {
			{PodcastID: 1, Position: ptr(1), Artist: "Vainica Doble", Title: "Caramelo de limón"},
			{PodcastID: 1, Artist: "Los Brincos", Title: "Flamenco"},
		},
	}

	doc := GenerateRSS(testChannel, episodes, WithTracklists(tracklists))
	assertWellFormed(t, doc)

	parsed := parse(t, doc)
	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Popcasting 001<br/><br/>1. Vainica Doble - Caramelo de limón<br/>2. Los Brincos - Flamenco", parsed.Items[0].Description)
	assert.Equal(t, "Popcasting 002", parsed.Items[1].Description)
}

func TestGenerateRSSNewFeedURL(t *testing.T) {
	channel := testChannel
	channel.Explicit = true
	channel.NewFeedURL = "https://popcastingpop.com/feed.xml"

	doc := GenerateRSS(channel, nil)
	assertWellFormed(t, doc)

	assert.Contains(t, doc, "<itunes:new-feed-url>https://popcastingpop.com/feed.xml</itunes:new-feed-url>")
	assert.Contains(t, doc, "<itunes:explicit>true</itunes:explicit>")
	assert.NotContains(t, doc, "<item>")
	assert.NotContains(t, GenerateRSS(testChannel, nil), "new-feed-url")
}

func TestDescriptionNumbersUnpositionedSongsLast(t *testing.T) {
	episode := models.Episode{ID: 4, Title: "Popcasting 004"}
	songs := []models.Song{
		{PodcastID: 4, Position: ptr(1), Artist: "Family", Title: "Nadie Como Tú"},
		{PodcastID: 4, Position: ptr(5), Artist: "Parálisis Permanente", Title: "Quiero ser santa"},
		{PodcastID: 4, Artist: "Aviador Dro", Title: "Nuclear sí"},
		{PodcastID: 4, Artist: "Radio Futura", Title: "Enamorado de la moda juvenil"},
	}

	got := description(episode, songs)

	assert.Equal(t, "Popcasting 004<br/>"+
		"<br/>1. Family - Nadie Como Tú"+
		"<br/>5. Parálisis Permanente - Quiero ser santa"+
		"<br/>6. Aviador Dro - Nuclear sí"+
		"<br/>7. Radio Futura - Enamorado de la moda juvenil", got)
}

func TestDescriptionWithoutPositions(t *testing.T) {
	songs := []models.Song{
		{Artist: "Los Brincos", Title: "Flamenco"},
		{Artist: "Vainica Doble", Title: "Caramelo de limón"},
	}

	got := description(models.Episode{Title: "Popcasting 005"}, songs)

	assert.Equal(t, "Popcasting 005<br/><br/>1. Los Brincos - Flamenco<br/>2. Vainica Doble - Caramelo de limón", got)
}
