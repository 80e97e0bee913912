// Package prompt holds the named instruction templates applied to each
// transcript chunk. Every template carries a {text} placeholder that the
// dispatcher substitutes with the chunk content.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultType is used when no prompt type is configured.
const DefaultType = "Questions and answers"

var templates = map[string]string{
	"Summarization": "Summarize the following transcript section. Keep the key points, " +
		"arguments and any concrete facts or figures. Write flowing prose, not bullet points. " +
		"Do not add information that is not in the text.\n\n{text}",

	"Questions and answers": "Read the following transcript section and restate its content " +
		"as a short series of questions and answers. Each question should capture something the " +
		"section actually addresses, and each answer should come only from the text itself.\n\n{text}",

	"Distill Wisdom": "Extract the most insightful, surprising or practically useful ideas " +
		"from the following transcript section. Keep quotes where the original wording matters. " +
		"Skip filler, greetings and housekeeping.\n\n{text}",

	"Only grammar correction with highlights": "Correct the grammar, punctuation and obvious " +
		"transcription errors in the following text. Keep the wording and meaning unchanged. " +
		"Wrap every correction in **bold** so the edits are visible.\n\n{text}",

	"Essay Writing in Paul Graham Style": "Rewrite the ideas in the following transcript " +
		"section as a short essay in the style of Paul Graham: plain words, short sentences, " +
		"concrete examples, and a willingness to follow an idea to its conclusion.\n\n{text}",
}

// Get returns the template for the given prompt type.
func Get(name string) (string, error) {
	tpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt type %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return tpl, nil
}

// Names lists the available prompt types in sorted order.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
