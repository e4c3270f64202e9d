// Package diff turns a (original, corrected) sentence pair into an annotated
// HTML fragment marking what the grader changed.
package diff

import (
	"html"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SegmentKind classifies a diff segment
type SegmentKind int

const (
	Unchanged SegmentKind = iota
	Inserted              // present only in the corrected sentence
	Deleted               // present only in the original sentence
)

// Segment is one span of the word-level diff
type Segment struct {
	Kind SegmentKind
	Text string
}

// Words computes a word-level diff between the original and corrected
// sentences. Tokens are whitespace-delimited words; whitespace stays attached
// to the preceding token so concatenating segment texts reproduces the
// sentences exactly. Deterministic for fixed inputs.
func Words(original, corrected string) []Segment {
	if original == corrected {
		if original == "" {
			return nil
		}
		return []Segment{{Kind: Unchanged, Text: original}}
	}

	dmp := diffmatchpatch.New()

	// Reuse the lines-to-chars trick at word granularity: each distinct word
	// token maps to one rune, so the LCS runs over words, not characters.
	origTokens := tokenize(original)
	corrTokens := tokenize(corrected)
	origChars, corrChars, tokenTable := tokensToChars(origTokens, corrTokens)

	diffs := dmp.DiffMain(origChars, corrChars, false)

	var segments []Segment
	for _, d := range diffs {
		var sb strings.Builder
		for _, r := range d.Text {
			sb.WriteString(tokenTable[r])
		}
		text := sb.String()
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			segments = append(segments, Segment{Kind: Unchanged, Text: text})
		case diffmatchpatch.DiffInsert:
			segments = append(segments, Segment{Kind: Inserted, Text: text})
		case diffmatchpatch.DiffDelete:
			segments = append(segments, Segment{Kind: Deleted, Text: text})
		}
	}
	return segments
}

// Highlight renders the word diff as an HTML fragment: insertions wrapped in
// <ins>, deletions in <del>, unchanged spans in <span>. Literal markup in the
// sentences is escaped before wrapping.
func Highlight(original, corrected string) string {
	var sb strings.Builder
	for _, seg := range Words(original, corrected) {
		escaped := html.EscapeString(seg.Text)
		switch seg.Kind {
		case Inserted:
			sb.WriteString("<ins>")
			sb.WriteString(escaped)
			sb.WriteString("</ins>")
		case Deleted:
			sb.WriteString("<del>")
			sb.WriteString(escaped)
			sb.WriteString("</del>")
		default:
			sb.WriteString("<span>")
			sb.WriteString(escaped)
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

// tokenize splits a sentence into word tokens, each carrying its trailing
// whitespace, so the token sequence concatenates back to the input.
func tokenize(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if inSpace && !isSpace {
			tokens = append(tokens, s[start:i])
			start = i
		}
		inSpace = isSpace
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// Surrogate code points cannot round-trip through a UTF-8 string.
const (
	utf8SurrogateMin = rune(0xD800)
	utf8SurrogateMax = rune(0xDFFF)
)

// tokensToChars encodes each distinct token as a single rune so the diff
// algorithm aligns whole words. Mirrors diffmatchpatch's DiffLinesToChars.
func tokensToChars(a, b []string) (string, string, map[rune]string) {
	table := make(map[rune]string)
	index := make(map[string]rune)
	next := rune(1)

	encode := func(tokens []string) string {
		var sb strings.Builder
		for _, tok := range tokens {
			r, ok := index[tok]
			if !ok {
				r = next
				next++
				// The surrogate range is not encodable; jump past it so
				// distinct tokens never alias through U+FFFD.
				if next == utf8SurrogateMin {
					next = utf8SurrogateMax + 1
				}
				index[tok] = r
				table[r] = tok
			}
			sb.WriteRune(r)
		}
		return sb.String()
	}

	return encode(a), encode(b), table
}
