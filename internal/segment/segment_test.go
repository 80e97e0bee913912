package segment

import (
	"fmt"
	"strings"
	"testing"
)

func joinChunks(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n")
}

func TestSplitRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
	}{
		{"empty input", "", 10000},
		{"single line", "no timestamps here", 10000},
		{"multiple paragraphs", "first paragraph\nsecond paragraph\nthird paragraph", 1000},
		{"leading and trailing whitespace", "  padded line  \n\n  another  ", 1000},
		{"blank lines between paragraphs", "a\n\n\nb\n\nc", 1000},
		{"long text forces several chunks", strings.Repeat("some words in a paragraph\n", 400), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.size)
			if got := joinChunks(chunks); got != tt.text {
				t.Errorf("round trip mismatch:\n got %q\nwant %q", got, tt.text)
			}
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	chunks := Split("", 10000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "" {
		t.Errorf("expected empty text, got %q", chunks[0].Text)
	}
}

func TestSplitNoChunkEmptyForNonEmptyInput(t *testing.T) {
	text := strings.Repeat("a paragraph with content\n", 300)
	for _, c := range Split(text, 1000) {
		if c.Text == "" {
			t.Errorf("chunk %d is empty", c.Index)
		}
	}
}

func TestSplitSingleParagraphNeverSplit(t *testing.T) {
	text := strings.Repeat("x", 5000) // one paragraph far above target
	chunks := Split(text, 1000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for unbroken paragraph, got %d", len(chunks))
	}
}

func TestSplitIndicesContiguous(t *testing.T) {
	text := strings.Repeat("paragraph text here\n", 500)
	for i, c := range Split(text, 1000) {
		if c.Index != i {
			t.Errorf("chunk at position %d has index %d", i, c.Index)
		}
	}
}

func TestSplitRespectsTargetSize(t *testing.T) {
	para := strings.Repeat("w", 200)
	text := strings.Repeat(para+"\n", 50)
	const target = 1000
	for _, c := range Split(text, target) {
		// a chunk may overshoot by at most one paragraph
		if len(c.Text) > target+len(para)+1 {
			t.Errorf("chunk %d has %d chars, exceeds target %d by more than one paragraph", c.Index, len(c.Text), target)
		}
	}
}

func TestSplitClampsTinyTarget(t *testing.T) {
	// target below the floor behaves as the floor: short paragraphs
	// that fit in 1000 chars stay together
	text := "one\ntwo\nthree"
	chunks := Split(text, 10)
	if len(chunks) != 1 {
		t.Errorf("expected clamped target to keep text in 1 chunk, got %d", len(chunks))
	}
}

func TestMergeSmall(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		size  int
		want  []string
	}{
		{
			name:  "run of micro-chunks collapses",
			parts: []string{"aa", "bb", "cc"},
			size:  1000,
			want:  []string{"aa\nbb\ncc"},
		},
		{
			name:  "large chunks stay apart",
			parts: []string{strings.Repeat("a", 600), strings.Repeat("b", 600)},
			size:  1000,
			want:  []string{strings.Repeat("a", 600), strings.Repeat("b", 600)},
		},
		{
			name:  "micro-chunks merge until half target",
			parts: []string{strings.Repeat("a", 300), strings.Repeat("b", 100), strings.Repeat("c", 600)},
			size:  1000,
			want:  []string{strings.Repeat("a", 300) + "\n" + strings.Repeat("b", 100), strings.Repeat("c", 600)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSmall(tt.parts, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d parts %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("part %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitTimestampExtraction(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"leading timestamp", "00:01:30 hello\n00:02:45 world", "00:01:30"},
		{"no timestamp", "no timestamps here", ""},
		{"timestamp mid-text", "intro line\n01:02:03 body", "01:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, 10000)
			if len(chunks) != 1 {
				t.Fatalf("expected 1 chunk, got %d", len(chunks))
			}
			if chunks[0].Timestamp != tt.want {
				t.Errorf("Timestamp = %q, want %q", chunks[0].Timestamp, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{5, "00:00:05"},
		{65.7, "00:01:05"},
		{3661, "01:01:01"},
		{36000, "10:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatTimestamp(tt.seconds); got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00:05", 5, false},
		{"00:01:30", 90, false},
		{"01:01:01", 3661, false},
		{"90", 0, true},
		{"aa:bb:cc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, secs := range []int{0, 59, 60, 3599, 3600, 86399} {
		ts := FormatTimestamp(float64(secs))
		got, err := ParseTimestamp(ts)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", ts, err)
		}
		if got != secs {
			t.Errorf("round trip %d -> %s -> %d", secs, ts, got)
		}
	}
}

func ExampleSplit() {
	chunks := Split("00:01:30 hello\n00:02:45 world", 10000)
	fmt.Println(len(chunks), chunks[0].Timestamp)
	// Output: 1 00:01:30
}
