package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "rooh.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetVideo(t *testing.T) {
	s := testStore(t)

	added, err := s.AddVideo(domain.Video{
		Title:     "كيان مجهول في الظلام",
		URL:       "https://cdn.example.com/v1.mp4",
		Category:  domain.Categories[0],
		Narration: "جملة 1 | جملة 2",
		Segments: []domain.NarrationSegment{
			{Text: "جملة 1", StartTime: 0},
			{Text: "جملة 2", StartTime: 2.5},
		},
	})
	if err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	if added.ID == "" {
		t.Fatal("AddVideo should assign an id")
	}
	if added.Type != domain.TypeShort || added.Repository != domain.RepoR2 {
		t.Fatalf("defaults not applied: type=%s repo=%s", added.Type, added.Repository)
	}
	if added.CreatedAt.IsZero() || !added.UpdatedAt.Equal(added.CreatedAt) {
		t.Fatalf("timestamps: created=%v updated=%v", added.CreatedAt, added.UpdatedAt)
	}

	got, err := s.GetVideo(added.ID)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if got.Title != added.Title || len(got.Segments) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Segments[1].StartTime != 2.5 {
		t.Fatalf("segment startTime=%v, want 2.5", got.Segments[1].StartTime)
	}
}

func TestListVideos_NewestFirst(t *testing.T) {
	s := testStore(t)

	for _, title := range []string{"oldest", "middle", "newest"} {
		if _, err := s.AddVideo(domain.Video{Title: title, URL: "u", Category: "صدمة"}); err != nil {
			t.Fatalf("AddVideo(%s): %v", title, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	videos, err := s.ListVideos()
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("len=%d, want 3", len(videos))
	}
	if videos[0].Title != "newest" || videos[2].Title != "oldest" {
		t.Fatalf("order: %s, %s, %s", videos[0].Title, videos[1].Title, videos[2].Title)
	}
}

func TestUpdateVideo_MergesFields(t *testing.T) {
	s := testStore(t)

	added, err := s.AddVideo(domain.Video{Title: "before", URL: "u1", Category: "صدمة"})
	if err != nil {
		t.Fatalf("AddVideo: %v", err)
	}

	updated, err := s.UpdateVideo(domain.Video{
		ID:        added.ID,
		Title:     "after",
		Narration: "new narration",
		Featured:  true,
	})
	if err != nil {
		t.Fatalf("UpdateVideo: %v", err)
	}
	if updated.Title != "after" || updated.Narration != "new narration" || !updated.Featured {
		t.Fatalf("merge result: %+v", updated)
	}
	// Untouched fields survive; created_at never moves.
	if updated.URL != "u1" || updated.Category != "صدمة" {
		t.Fatalf("unset fields overwritten: %+v", updated)
	}
	if !updated.CreatedAt.Equal(added.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", added.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(added.UpdatedAt) && !updated.UpdatedAt.Equal(added.UpdatedAt) {
		t.Fatalf("updated_at did not advance: %v", updated.UpdatedAt)
	}
}

func TestUpdateVideo_NotFound(t *testing.T) {
	s := testStore(t)
	if _, err := s.UpdateVideo(domain.Video{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestDeleteVideo(t *testing.T) {
	s := testStore(t)

	added, err := s.AddVideo(domain.Video{Title: "t", URL: "u", Category: "صدمة"})
	if err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	if err := s.DeleteVideo(added.ID); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}
	if _, err := s.GetVideo(added.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetVideo after delete err=%v, want ErrNotFound", err)
	}
	if err := s.DeleteVideo(added.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err=%v, want ErrNotFound", err)
	}
}
