package narration

import "github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"

// Resolve picks the caption text for a video at the given playback position.
// The second return value is false when no caption should be shown.
//
// Audio target drives the source: "none" never shows a caption, "title" always
// shows the title, and narration mode shows the last segment in sequence order
// whose start time has been reached. When the video has narration text but no
// segment list, the raw text is shown verbatim.
func Resolve(v domain.Video, currentTime float64) (string, bool) {
	switch v.AudioTarget {
	case domain.AudioNone:
		return "", false
	case domain.AudioTitle:
		return v.Title, true
	}

	if len(v.Segments) > 0 {
		for i := len(v.Segments) - 1; i >= 0; i-- {
			if v.Segments[i].StartTime <= currentTime {
				return v.Segments[i].Text, true
			}
		}
		return "", false
	}

	if v.Narration != "" {
		return v.Narration, true
	}
	return "", false
}
