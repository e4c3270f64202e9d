package diff

import (
	"fmt"
	"strings"
	"testing"
)

func TestWordsIdenticalInputs(t *testing.T) {
	sentence := "I like to run in the park."

	segments := Words(sentence, sentence)

	if len(segments) != 1 {
		t.Fatalf("Words(s, s) returned %d segments, want 1", len(segments))
	}
	if segments[0].Kind != Unchanged {
		t.Errorf("segment kind = %v, want Unchanged", segments[0].Kind)
	}
	if segments[0].Text != sentence {
		t.Errorf("segment text = %q, want %q", segments[0].Text, sentence)
	}
}

func TestWordsDisjointInputs(t *testing.T) {
	segments := Words("alpha beta", "gamma delta")

	var deleted, inserted, unchanged int
	for _, seg := range segments {
		switch seg.Kind {
		case Deleted:
			deleted++
		case Inserted:
			inserted++
		case Unchanged:
			unchanged++
		}
	}

	if unchanged != 0 {
		t.Errorf("disjoint inputs produced %d unchanged segments", unchanged)
	}
	if deleted == 0 || inserted == 0 {
		t.Errorf("disjoint inputs: deleted=%d inserted=%d, want both > 0", deleted, inserted)
	}
}

// Concatenating unchanged and inserted segment text in order must reproduce
// the corrected sentence exactly.
func TestWordsReconstruction(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		corrected string
	}{
		{
			name:      "single word substitution",
			original:  "I likes to run in the park",
			corrected: "I like to run in the park",
		},
		{
			name:      "word inserted",
			original:  "She advocates human rights",
			corrected: "She advocates for human rights",
		},
		{
			name:      "word deleted",
			original:  "He did not never agree",
			corrected: "He did not agree",
		},
		{
			name:      "rewritten tail",
			original:  "The data proliferation is mitigate by rules",
			corrected: "The proliferation of data is mitigated by rules",
		},
		{
			name:      "empty original",
			original:  "",
			corrected: "Something entirely new",
		},
		{
			name:      "identical",
			original:  "Perfect sentence already.",
			corrected: "Perfect sentence already.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			for _, seg := range Words(tt.original, tt.corrected) {
				if seg.Kind != Deleted {
					sb.WriteString(seg.Text)
				}
			}
			if got := sb.String(); got != tt.corrected {
				t.Errorf("reconstructed %q, want %q", got, tt.corrected)
			}
		})
	}
}

// Deleted and unchanged segments together must reproduce the original.
func TestWordsOriginalReconstruction(t *testing.T) {
	original := "The goverment must mitigate this issues quickly"
	corrected := "The government must mitigate these issues quickly"

	var sb strings.Builder
	for _, seg := range Words(original, corrected) {
		if seg.Kind != Inserted {
			sb.WriteString(seg.Text)
		}
	}
	if got := sb.String(); got != original {
		t.Errorf("reconstructed %q, want %q", got, original)
	}
}

func TestWordsDeterministic(t *testing.T) {
	original := "I has a apple"
	corrected := "I have an apple"

	first := Words(original, corrected)
	for i := 0; i < 10; i++ {
		again := Words(original, corrected)
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d segments, first run %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d segment %d = %+v, first run %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestHighlightNoMarkersOnEqualInputs(t *testing.T) {
	sentence := "This sentence is already perfect."

	got := Highlight(sentence, sentence)

	if strings.Contains(got, "<ins>") || strings.Contains(got, "<del>") {
		t.Errorf("Highlight(s, s) = %q, want no insertion/deletion markers", got)
	}
	if !strings.Contains(got, sentence) {
		t.Errorf("Highlight(s, s) = %q, want the sentence preserved", got)
	}
}

func TestHighlightMarksChanges(t *testing.T) {
	got := Highlight("I likes apples", "I like apples")

	if !strings.Contains(got, "<del>") {
		t.Errorf("Highlight missing <del> segment: %q", got)
	}
	if !strings.Contains(got, "<ins>") {
		t.Errorf("Highlight missing <ins> segment: %q", got)
	}
}

func TestHighlightEscapesMarkup(t *testing.T) {
	got := Highlight("I <b>really</b> agree", "I <b>truly</b> agree")

	if strings.Contains(got, "<b>") {
		t.Errorf("literal markup not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;") {
		t.Errorf("expected escaped markup in %q", got)
	}
}

// The token encoding assigns one rune per distinct token; once the counter
// would enter the surrogate range it must jump past it, or tokens start
// aliasing through the replacement character.
func TestWordsManyDistinctTokens(t *testing.T) {
	const tokenCount = 0xE000 + 100 // well past the surrogate range

	var a, b strings.Builder
	for i := 0; i < tokenCount; i++ {
		fmt.Fprintf(&a, "tok%d ", i)
		if i == tokenCount-2 {
			b.WriteString("changed ")
		} else {
			fmt.Fprintf(&b, "tok%d ", i)
		}
	}
	original, corrected := a.String(), b.String()

	segments := Words(original, corrected)

	var fromOriginal, fromCorrected strings.Builder
	for _, seg := range segments {
		if seg.Kind != Inserted {
			fromOriginal.WriteString(seg.Text)
		}
		if seg.Kind != Deleted {
			fromCorrected.WriteString(seg.Text)
		}
	}
	if fromOriginal.String() != original {
		t.Error("kept segments do not reconstruct the original")
	}
	if fromCorrected.String() != corrected {
		t.Error("kept segments do not reconstruct the corrected text")
	}

	var deleted, inserted int
	for _, seg := range segments {
		switch seg.Kind {
		case Deleted:
			deleted += len(strings.Fields(seg.Text))
		case Inserted:
			inserted += len(strings.Fields(seg.Text))
		}
	}
	if deleted != 1 || inserted != 1 {
		t.Errorf("deleted %d and inserted %d words, want 1 and 1", deleted, inserted)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"one",
		"two words",
		"  leading space",
		"trailing space ",
		"multiple   internal    spaces",
	}

	for _, input := range tests {
		tokens := tokenize(input)
		if got := strings.Join(tokens, ""); got != input {
			t.Errorf("tokenize(%q) does not round-trip: %q", input, got)
		}
	}
}
