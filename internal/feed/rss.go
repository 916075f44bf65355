package feed

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/eduncan911/podcast"
	"popcasting-rss/internal/models"
)

const (
	itunesNamespace  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	podcastNamespace = "https://podcastindex.org/namespace/1.0"
)

// Option customizes a single GenerateRSS call.
type Option func(*options)

type options struct {
	tracklists map[int64][]models.Song
}

// WithTracklists appends each episode's tracklist to its description.
func WithTracklists(tracklists map[int64][]models.Song) Option {
	return func(o *options) {
		o.tracklists = tracklists
	}
}

// GenerateRSS renders the channel and its episodes as an RSS 2.0 document.
// Episodes are written in the order given.
func GenerateRSS(channel Channel, episodes []models.Episode, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	fmt.Fprintf(&buf, `<rss version="2.0" xmlns:itunes="%s" xmlns:podcast="%s">`, itunesNamespace, podcastNamespace)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", channel.Title, 4)
	writeElement(&buf, "link", channel.Link, 4)
	writeElement(&buf, "language", channel.Language, 4)
	writeElement(&buf, "description", channel.Description, 4)

	buf.WriteString("    <image>\n")
	writeElement(&buf, "url", channel.ImageSmall, 6)
	writeElement(&buf, "title", channel.Title, 6)
	writeElement(&buf, "link", channel.Link, 6)
	buf.WriteString("    </image>\n")

	writeElement(&buf, "itunes:author", channel.Author, 4)
	fmt.Fprintf(&buf, "    <itunes:image href=\"%s\"/>\n", escapeAttr(channel.ImageLarge))
	fmt.Fprintf(&buf, "    <itunes:category text=\"%s\"/>\n", escapeAttr(channel.Category))
	writeElement(&buf, "itunes:explicit", channel.explicit(), 4)
	if channel.NewFeedURL != "" {
		writeElement(&buf, "itunes:new-feed-url", channel.NewFeedURL, 4)
	}

	for _, episode := range episodes {
		writeItem(&buf, channel, episode, o.tracklists[episode.ID])
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.String()
}

func writeItem(buf *bytes.Buffer, channel Channel, episode models.Episode, songs []models.Song) {
	guid := channel.guid(episode.ID)
	if episode.WordpressURL != nil && *episode.WordpressURL != "" {
		guid = *episode.WordpressURL
	}

	var number string
	if episode.ProgramNumber != nil {
		number = strconv.FormatInt(*episode.ProgramNumber, 10)
	}

	buf.WriteString("    <item>\n")
	writeElement(buf, "title", episode.Title, 6)
	writeElement(buf, "link", channel.itemLink(episode.ID), 6)
	writeElement(buf, "pubDate", PubDate(episode.Date), 6)
	fmt.Fprintf(buf, "      <guid isPermaLink=\"false\">%s</guid>\n", escapeText(guid))
	fmt.Fprintf(buf, "      <enclosure url=\"%s\" length=\"%d\" type=\"%s\"/>\n",
		escapeAttr(episode.DownloadURL),
		episode.Length(),
		podcast.MP3.String())
	writeElement(buf, "itunes:episode", number, 6)
	writeElement(buf, "itunes:duration", HHMMSS(episode.DurationSeconds()), 6)
	writeElement(buf, "itunes:explicit", channel.explicit(), 6)
	fmt.Fprintf(buf, "      <description>%s</description>\n", cdata(description(episode, songs)))
	buf.WriteString("    </item>\n")
}

// description is the episode title, followed by the tracklist when there is
// one. Lines are separated with <br/> since readers render it as HTML. Songs
// without a position are numbered after the highest known position.
func description(episode models.Episode, songs []models.Song) string {
	if len(songs) == 0 {
		return episode.Title
	}

	next := 0
	for _, song := range songs {
		if song.Position != nil && *song.Position > next {
			next = *song.Position
		}
	}

	var sb strings.Builder
	sb.WriteString(episode.Title)
	sb.WriteString("<br/>")
	for _, song := range songs {
		var position int
		if song.Position != nil {
			position = *song.Position
		} else {
			next++
			position = next
		}
		fmt.Fprintf(&sb, "<br/>%d. %s - %s", position, song.Artist, song.Title)
	}
	return sb.String()
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	buf.WriteString(escapeText(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
