// Package summary turns ordered chunk results into the final document and
// writes it out as markdown or docx.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/martinopiaggi/summarize/internal/dispatch"
	"github.com/martinopiaggi/summarize/internal/segment"
	"github.com/martinopiaggi/summarize/internal/source"
)

// Assemble concatenates usable results in chunk order, one blank line
// between pieces. YouTube sources get their timestamps rendered as deep
// links into the video.
func Assemble(results []dispatch.Result, desc source.Descriptor) string {
	ordered := make([]dispatch.Result, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	var pieces []string
	for _, r := range ordered {
		if r.Failed || strings.TrimSpace(r.Text) == "" {
			continue
		}
		if r.Timestamp != "" {
			pieces = append(pieces, renderTimestamp(r.Timestamp, desc)+"\n\n"+r.Text)
		} else {
			pieces = append(pieces, r.Text)
		}
	}
	return strings.Join(pieces, "\n\n")
}

// renderTimestamp produces "HH:MM:SS - <url>&t=<seconds>" for YouTube
// sources and the bare timestamp otherwise. An unparseable timestamp
// falls back to its raw form.
func renderTimestamp(timestamp string, desc source.Descriptor) string {
	if desc.Kind != source.KindYouTube {
		return timestamp
	}
	secs, err := segment.ParseTimestamp(timestamp)
	if err != nil {
		return timestamp
	}
	return fmt.Sprintf("%s - %s&t=%d", timestamp, desc.Locator, secs)
}
