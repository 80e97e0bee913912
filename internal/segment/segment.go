// Package segment splits a timestamped transcript into bounded chunks
// suitable for independent summarization requests.
package segment

import (
	"regexp"
	"strings"
)

// Chunks below this size waste a full request on a few words, so smaller
// targets are clamped up.
const minChunkSize = 1000

var timestampPattern = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)

// Chunk is one bounded piece of transcript. Index is its position in the
// original text and is preserved through concurrent processing.
type Chunk struct {
	Index     int
	Timestamp string // first HH:MM:SS occurrence, empty when none
	Text      string
}

// Split breaks text into ordered chunks on paragraph (line) boundaries. A
// chunk grows greedily until adding the next paragraph would exceed
// targetSize, so individual chunks may overshoot by up to one paragraph but
// never cut one mid-way. Joining all chunk texts with "\n" reproduces the
// input exactly.
//
// Empty input yields a single chunk holding the empty string; callers treat
// that as "no content" upstream.
func Split(text string, targetSize int) []Chunk {
	if targetSize < minChunkSize {
		targetSize = minChunkSize
	}

	var parts []string
	var current []string
	size := 0
	for _, para := range strings.Split(text, "\n") {
		paraSize := len(para) + 1 // +1 for the joining newline
		if size+paraSize > targetSize && len(current) > 0 {
			parts = append(parts, strings.Join(current, "\n"))
			current = []string{para}
			size = paraSize
		} else {
			current = append(current, para)
			size += paraSize
		}
	}
	if len(current) > 0 {
		parts = append(parts, strings.Join(current, "\n"))
	}

	parts = mergeSmall(parts, targetSize)

	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, Chunk{
			Index:     i,
			Timestamp: timestampPattern.FindString(part),
			Text:      part,
		})
	}
	return chunks
}

// mergeSmall folds adjacent chunks whose combined size stays under half the
// target, preventing pathological trailing micro-chunks.
func mergeSmall(parts []string, targetSize int) []string {
	var merged []string
	var pending []string
	size := 0
	for _, part := range parts {
		if size+len(part) < targetSize/2 {
			pending = append(pending, part)
			size += len(part)
		} else {
			if len(pending) > 0 {
				merged = append(merged, strings.Join(pending, "\n"))
			}
			pending = []string{part}
			size = len(part)
		}
	}
	if len(pending) > 0 {
		merged = append(merged, strings.Join(pending, "\n"))
	}
	return merged
}
