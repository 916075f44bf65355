package feed

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;")
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// cdata wraps s in a CDATA section. A "]]>" inside s is split across two
// sections so the block cannot be closed early.
func cdata(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// HHMMSS formats a duration in seconds as hh:mm:ss. Fractions are truncated
// and anything negative or not a finite number renders as 00:00:00.
func HHMMSS(seconds float64) string {
	if !(seconds >= 0 && seconds < math.MaxInt64) {
		seconds = 0
	}
	s := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// publishZone is the fixed offset episodes are considered published in.
var publishZone = time.FixedZone("CEST", 2*60*60)

const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// PubDate renders the calendar date of date as published at 20:00 in
// publishZone, expressed in UTC.
func PubDate(date time.Time) string {
	y, m, d := date.Date()
	return time.Date(y, m, d, 20, 0, 0, 0, publishZone).UTC().Format(pubDateLayout)
}
