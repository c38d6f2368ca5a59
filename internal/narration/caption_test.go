package narration

import (
	"testing"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

func timedVideo() domain.Video {
	return domain.Video{
		Title:       "كيان مجهول",
		AudioTarget: domain.AudioNarration,
		Segments: []domain.NarrationSegment{
			{Text: "seg0", StartTime: 0},
			{Text: "seg1", StartTime: 2},
			{Text: "seg2", StartTime: 5},
		},
	}
}

func TestResolve_LastReachedSegment(t *testing.T) {
	cases := []struct {
		name        string
		currentTime float64
		wantText    string
		wantShown   bool
	}{
		{"between second and third", 3, "seg1", true},
		{"at start", 0, "seg0", true},
		{"exactly on boundary", 5, "seg2", true},
		{"past the end", 100, "seg2", true},
		{"before any segment", -1, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, shown := Resolve(timedVideo(), tc.currentTime)
			if shown != tc.wantShown || text != tc.wantText {
				t.Fatalf("Resolve(t=%v) = (%q, %v), want (%q, %v)",
					tc.currentTime, text, shown, tc.wantText, tc.wantShown)
			}
		})
	}
}

func TestResolve_AudioTargetNone(t *testing.T) {
	v := timedVideo()
	v.AudioTarget = domain.AudioNone
	if text, shown := Resolve(v, 10); shown || text != "" {
		t.Fatalf("audio target none: got (%q, %v), want no caption", text, shown)
	}
}

func TestResolve_AudioTargetTitle(t *testing.T) {
	v := timedVideo()
	v.AudioTarget = domain.AudioTitle
	if text, shown := Resolve(v, 10); !shown || text != v.Title {
		t.Fatalf("audio target title: got (%q, %v), want title", text, shown)
	}
}

func TestResolve_RawNarrationFallback(t *testing.T) {
	v := domain.Video{AudioTarget: domain.AudioNarration, Narration: "whispers in the dark"}
	if text, shown := Resolve(v, 0); !shown || text != "whispers in the dark" {
		t.Fatalf("got (%q, %v), want raw narration text", text, shown)
	}
}

func TestResolve_DefaultTargetBehavesAsNarration(t *testing.T) {
	v := timedVideo()
	v.AudioTarget = ""
	if text, shown := Resolve(v, 3); !shown || text != "seg1" {
		t.Fatalf("got (%q, %v), want seg1", text, shown)
	}
}

func TestResolve_EmptyEverything(t *testing.T) {
	if text, shown := Resolve(domain.Video{}, 42); shown || text != "" {
		t.Fatalf("got (%q, %v), want no caption", text, shown)
	}
}
