package motion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Segment is one animatable unit of text.
type Segment struct {
	Text  string
	Kind  SplitMode
	Index int
}

// IsSpace reports whether the segment holds only whitespace.
func (s Segment) IsSpace() bool {
	return s.Text != "" && strings.TrimFunc(s.Text, unicode.IsSpace) == ""
}

// Split cuts text into segments:
//
//   - SplitChar yields one segment per grapheme cluster, so combining marks and
//     emoji sequences stay whole;
//   - SplitWord yields alternating word and whitespace runs, and concatenating
//     every segment reproduces text exactly;
//   - SplitLine yields one segment per newline-separated line, without the
//     newline.
//
// Empty text yields no segments.
func Split(text string, per SplitMode) []Segment {
	if text == "" {
		return nil
	}
	var parts []string
	switch per {
	case SplitChar:
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			parts = append(parts, g.Str())
		}
	case SplitLine:
		parts = strings.Split(text, "\n")
	default:
		parts = splitWords(text)
	}
	out := make([]Segment, len(parts))
	for i, p := range parts {
		out[i] = Segment{Text: p, Kind: per, Index: i}
	}
	return out
}

// splitWords cuts text at every boundary between whitespace and
// non-whitespace runes.
func splitWords(text string) []string {
	var parts []string
	start := 0
	var prevSpace bool
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		space := unicode.IsSpace(r)
		if i > start && space != prevSpace {
			parts = append(parts, text[start:i])
			start = i
		}
		prevSpace = space
		i += size
	}
	return append(parts, text[start:])
}

// Join concatenates segment texts. For word segments the result equals the
// text they were split from.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
