package narration

import (
	"errors"
	"strings"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

// ErrEmptyNarration signals that there is no narration text to segment.
var ErrEmptyNarration = errors.New("narration text is empty")

// wordsPerChunk is the group size used when the text carries no explicit
// delimiter.
const wordsPerChunk = 4

// Split turns free-form narration text into an ordered segment sequence with
// all start times at zero, ready for the timing Recorder.
//
// If the text contains the '|' delimiter it is split on it and each piece is
// trimmed. Otherwise the text is split on whitespace and consecutive words are
// grouped four at a time, joined by single spaces.
func Split(text string) ([]domain.NarrationSegment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyNarration
	}

	if strings.Contains(text, "|") {
		pieces := strings.Split(text, "|")
		segments := make([]domain.NarrationSegment, 0, len(pieces))
		for _, p := range pieces {
			segments = append(segments, domain.NarrationSegment{Text: strings.TrimSpace(p)})
		}
		return segments, nil
	}

	words := strings.Fields(text)
	segments := make([]domain.NarrationSegment, 0, (len(words)+wordsPerChunk-1)/wordsPerChunk)
	for i := 0; i < len(words); i += wordsPerChunk {
		end := i + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		segments = append(segments, domain.NarrationSegment{Text: strings.Join(words[i:end], " ")})
	}
	return segments, nil
}
