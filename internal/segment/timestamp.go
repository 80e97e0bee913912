package segment

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimestamp converts a second offset to HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// ParseTimestamp converts an HH:MM:SS string back to total seconds.
func ParseTimestamp(timestamp string) (int, error) {
	fields := strings.Split(timestamp, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", timestamp)
	}
	total := 0
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
		}
		total = total*60 + n
	}
	return total, nil
}
