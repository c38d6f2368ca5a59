package narration

import (
	"errors"
	"fmt"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

// RecorderState names the phases of a timing pass.
type RecorderState int

const (
	StateIdle RecorderState = iota
	StateCollecting
	StateDone
)

// ErrNotCollecting is returned by Mark when no timing pass is in progress.
var ErrNotCollecting = errors.New("recorder is not collecting")

// Recorder assigns playback timestamps to a segment sequence one segment at a
// time, in order. A pass moves Idle -> Collecting -> Done; each Mark stamps
// the segment under the cursor and advances. There is no way to re-mark an
// earlier segment short of restarting the pass, which discards all recorded
// times.
type Recorder struct {
	state    RecorderState
	segments []domain.NarrationSegment
	cursor   int
}

// NewRecorder returns an idle Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a timing pass over a copy of segments, with every start time
// reset to zero and the cursor on the first segment.
func (r *Recorder) Start(segments []domain.NarrationSegment) error {
	if len(segments) == 0 {
		return ErrEmptyNarration
	}
	r.segments = make([]domain.NarrationSegment, len(segments))
	copy(r.segments, segments)
	for i := range r.segments {
		r.segments[i].StartTime = 0
	}
	r.cursor = 0
	r.state = StateCollecting
	return nil
}

// Mark stamps the segment under the cursor with playbackTime and advances.
// Marking the last segment completes the pass. Times before zero are rejected
// since start times are defined as non-negative seconds.
func (r *Recorder) Mark(playbackTime float64) error {
	if r.state != StateCollecting {
		return ErrNotCollecting
	}
	if playbackTime < 0 {
		return fmt.Errorf("negative playback time: %v", playbackTime)
	}
	r.segments[r.cursor].StartTime = playbackTime
	if r.cursor < len(r.segments)-1 {
		r.cursor++
		return nil
	}
	r.state = StateDone
	return nil
}

// Reset discards the pass and any recorded times, returning to Idle.
func (r *Recorder) Reset() {
	r.state = StateIdle
	r.segments = nil
	r.cursor = 0
}

// State reports the current phase.
func (r *Recorder) State() RecorderState { return r.state }

// Active reports whether a pass is in progress.
func (r *Recorder) Active() bool { return r.state == StateCollecting }

// Cursor returns the index of the segment the next Mark will stamp.
func (r *Recorder) Cursor() int { return r.cursor }

// Current returns the segment the next Mark will stamp.
func (r *Recorder) Current() (domain.NarrationSegment, bool) {
	if r.state != StateCollecting {
		return domain.NarrationSegment{}, false
	}
	return r.segments[r.cursor], true
}

// Segments returns a copy of the sequence with the times recorded so far.
func (r *Recorder) Segments() []domain.NarrationSegment {
	out := make([]domain.NarrationSegment, len(r.segments))
	copy(out, r.segments)
	return out
}
