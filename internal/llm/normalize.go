package llm

import (
	"fmt"
	"strings"
)

const thinkMarker = "</think>"

// normalize extracts the generated text from a reply envelope and
// canonicalizes provider-specific formatting. A missing content field is a
// content-free turn, not an error.
func normalize(resp *chatResponse, baseURL string) string {
	var content string
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}

	if strings.Contains(strings.ToLower(baseURL), "perplexity") {
		// The reasoning segment may itself contain the marker: keep
		// only what follows the last occurrence.
		if idx := strings.LastIndex(content, thinkMarker); idx != -1 {
			content = strings.TrimSpace(content[idx+len(thinkMarker):])
		}
		content = stripCodeFences(content)
	}

	if len(resp.Citations) > 0 {
		var b strings.Builder
		b.WriteString(content)
		b.WriteString("\n\nSources:\n")
		for i, citation := range resp.Citations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, citation)
		}
		content = b.String()
	}

	return content
}

func stripCodeFences(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(s[3:])
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}
	return s
}
