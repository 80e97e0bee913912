package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SaveMarkdown writes the summary to outputDir under a name derived from
// the locator and the current time, and returns the file path.
func SaveMarkdown(outputDir, locator, text string) (string, error) {
	path, err := outputPath(outputDir, locator, "md")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary for: %s\n\n", locator)
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(text)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.Wrap(err, "write summary file")
	}
	return path, nil
}

// SaveDocx writes the summary as a styled docx document.
func SaveDocx(outputDir, locator, text string) (string, error) {
	path, err := outputPath(outputDir, locator, "docx")
	if err != nil {
		return "", err
	}
	if err := markdownToDocx("Summary for: "+locator, text, path); err != nil {
		return "", errors.Wrap(err, "write docx summary")
	}
	return path, nil
}

func outputPath(outputDir, locator, ext string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	name := fmt.Sprintf("%s_%s.%s", cleanLocator(locator), time.Now().Format("20060102_150405"), ext)
	return filepath.Join(outputDir, name), nil
}

// cleanLocator reduces a URL or path to its last segment, without query
// string, for use in a filename.
func cleanLocator(locator string) string {
	s := locator
	if i := strings.Index(s, "?"); i != -1 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i != -1 {
		s = s[i+1:]
	}
	if s == "" {
		return "summary"
	}
	return s
}
