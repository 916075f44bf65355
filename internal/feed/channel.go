package feed

import "strconv"

// Channel is the static metadata of the podcast. It is built once from
// configuration and never mutated.
type Channel struct {
	Title       string
	Link        string
	Description string
	Language    string
	ImageSmall  string
	ImageLarge  string
	Explicit    bool
	Author      string
	Category    string
	// NewFeedURL announces a feed move to podcast directories when set.
	NewFeedURL string

	// GUIDNamespace prefixes the synthesized guid of episodes without an
	// external URL.
	GUIDNamespace string
	// ItemLinkBase is joined with the episode id to form each item link.
	ItemLinkBase string
}

func (c Channel) explicit() string {
	return strconv.FormatBool(c.Explicit)
}

func (c Channel) guid(id int64) string {
	return c.GUIDNamespace + "-" + strconv.FormatInt(id, 10)
}

func (c Channel) itemLink(id int64) string {
	return c.ItemLinkBase + strconv.FormatInt(id, 10)
}
