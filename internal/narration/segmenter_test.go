package narration

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit_DelimiterPieces(t *testing.T) {
	segments, err := Split("x | y | z")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("len(segments)=%d, want 3", len(segments))
	}
	want := []string{"x", "y", "z"}
	for i, s := range segments {
		if s.Text != want[i] {
			t.Errorf("segment %d text=%q, want %q", i, s.Text, want[i])
		}
		if s.StartTime != 0 {
			t.Errorf("segment %d startTime=%v, want 0", i, s.StartTime)
		}
	}
}

func TestSplit_DelimiterCountPlusOne(t *testing.T) {
	text := "one|two words here | three "
	segments, err := Split(text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if got, want := len(segments), strings.Count(text, "|")+1; got != want {
		t.Fatalf("len(segments)=%d, want %d", got, want)
	}
	if segments[1].Text != "two words here" {
		t.Errorf("segment 1 text=%q, want trimmed piece", segments[1].Text)
	}
}

func TestSplit_FourWordGroups(t *testing.T) {
	segments, err := Split("a b c d e f g h i")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []string{"a b c d", "e f g h", "i"}
	if len(segments) != len(want) {
		t.Fatalf("len(segments)=%d, want %d", len(segments), len(want))
	}
	for i, s := range segments {
		if s.Text != want[i] {
			t.Errorf("segment %d text=%q, want %q", i, s.Text, want[i])
		}
	}
}

func TestSplit_GroupingPreservesWordSequence(t *testing.T) {
	text := "the garden gate creaked open and nobody was there at all"
	segments, err := Split(text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	words := strings.Fields(text)
	wantLen := (len(words) + 3) / 4
	if len(segments) != wantLen {
		t.Fatalf("len(segments)=%d, want ceil(%d/4)=%d", len(segments), len(words), wantLen)
	}

	var rejoined []string
	for _, s := range segments {
		rejoined = append(rejoined, strings.Fields(s.Text)...)
	}
	if strings.Join(rejoined, " ") != strings.Join(words, " ") {
		t.Fatalf("rejoined words %q != original %q", rejoined, words)
	}
}

func TestSplit_EmptyRejected(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := Split(text); !errors.Is(err, ErrEmptyNarration) {
			t.Errorf("Split(%q) err=%v, want ErrEmptyNarration", text, err)
		}
	}
}
