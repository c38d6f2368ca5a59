package interactions

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

// memStorage keeps the blob in memory and counts saves.
type memStorage struct {
	data    []byte
	loadErr error
	saves   int
}

func (m *memStorage) Load() ([]byte, error) { return m.data, m.loadErr }
func (m *memStorage) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func TestToggleLike_RoundTrip(t *testing.T) {
	s := New(&memStorage{})

	if err := s.ToggleLike("v1"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !s.Liked("v1") {
		t.Fatal("v1 should be liked after one toggle")
	}
	if err := s.ToggleLike("v1"); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if s.Liked("v1") {
		t.Fatal("v1 should be back to unliked after two toggles")
	}
	if got := len(s.State().LikedIDs); got != 0 {
		t.Fatalf("likedIds len=%d, want 0", got)
	}
}

func TestToggles_IndependentSets(t *testing.T) {
	s := New(&memStorage{})
	if err := s.ToggleDislike("v1"); err != nil {
		t.Fatalf("ToggleDislike: %v", err)
	}
	if err := s.ToggleSave("v1"); err != nil {
		t.Fatalf("ToggleSave: %v", err)
	}
	if err := s.ToggleSaveCategory("صدمة"); err != nil {
		t.Fatalf("ToggleSaveCategory: %v", err)
	}

	state := s.State()
	if !s.Disliked("v1") || !s.Saved("v1") || s.Liked("v1") {
		t.Fatalf("unexpected membership: %+v", state)
	}
	if len(state.SavedCategoryNames) != 1 || state.SavedCategoryNames[0] != "صدمة" {
		t.Fatalf("savedCategoryNames=%v", state.SavedCategoryNames)
	}
}

func TestRecordProgress_UpsertsByID(t *testing.T) {
	s := New(&memStorage{})
	if err := s.RecordProgress("v1", 0.5); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if err := s.RecordProgress("v1", 0.8); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	history := s.State().WatchHistory
	if len(history) != 1 {
		t.Fatalf("watchHistory len=%d, want 1", len(history))
	}
	if history[0].ID != "v1" || history[0].Progress != 0.8 {
		t.Fatalf("watchHistory[0]=%+v, want v1/0.8", history[0])
	}
	if got := s.Progress("v1"); got != 0.8 {
		t.Fatalf("Progress=%v, want 0.8", got)
	}
}

func TestMarkDownloaded_UnionNotToggle(t *testing.T) {
	s := New(&memStorage{})
	for i := 0; i < 3; i++ {
		if err := s.MarkDownloaded("v1"); err != nil {
			t.Fatalf("MarkDownloaded: %v", err)
		}
	}
	if got := s.State().DownloadedIDs; len(got) != 1 || got[0] != "v1" {
		t.Fatalf("downloadedIds=%v, want [v1]", got)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	mem := &memStorage{}
	s := New(mem)

	mutations := []func() error{
		func() error { return s.ToggleLike("a") },
		func() error { return s.ToggleDislike("b") },
		func() error { return s.ToggleSave("c") },
		func() error { return s.ToggleSaveCategory("رعب حقيقي") },
		func() error { return s.RecordProgress("a", 0.25) },
		func() error { return s.MarkDownloaded("a") },
	}
	for i, m := range mutations {
		if err := m(); err != nil {
			t.Fatalf("mutation %d: %v", i, err)
		}
	}
	if mem.saves != len(mutations) {
		t.Fatalf("saves=%d, want %d", mem.saves, len(mutations))
	}

	// The blob must decode back into the same state.
	var persisted domain.UserInteractions
	if err := json.Unmarshal(mem.data, &persisted); err != nil {
		t.Fatalf("decode persisted blob: %v", err)
	}
	if len(persisted.LikedIDs) != 1 || persisted.LikedIDs[0] != "a" {
		t.Fatalf("persisted likedIds=%v", persisted.LikedIDs)
	}
	if len(persisted.WatchHistory) != 1 || persisted.WatchHistory[0].Progress != 0.25 {
		t.Fatalf("persisted watchHistory=%v", persisted.WatchHistory)
	}
}

func TestNew_CorruptBlobFallsBackEmpty(t *testing.T) {
	s := New(&memStorage{data: []byte("{not json")})
	state := s.State()
	if len(state.LikedIDs) != 0 || len(state.WatchHistory) != 0 {
		t.Fatalf("state after corrupt load=%+v, want empty", state)
	}
}

func TestNew_LoadErrorFallsBackEmpty(t *testing.T) {
	s := New(&memStorage{loadErr: errors.New("disk gone")})
	if got := len(s.State().DownloadedIDs); got != 0 {
		t.Fatalf("downloadedIds len=%d, want 0", got)
	}
}

func TestNew_RehydratesSavedState(t *testing.T) {
	blob, _ := json.Marshal(domain.UserInteractions{
		LikedIDs:     []string{"v9"},
		WatchHistory: []domain.WatchEntry{{ID: "v9", Progress: 0.9}},
	})
	s := New(&memStorage{data: blob})
	if !s.Liked("v9") {
		t.Fatal("v9 should be liked after rehydrate")
	}
	// nil fields from an older blob come back as empty arrays.
	if s.State().SavedIDs == nil {
		t.Fatal("savedIds should be an empty slice, not nil")
	}
}

func TestFileStorage_RoundTripAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile", DefaultFileName)
	fs := FileStorage{Path: path}

	if data, err := fs.Load(); err != nil || data != nil {
		t.Fatalf("Load missing file = (%v, %v), want (nil, nil)", data, err)
	}

	if err := fs.Save([]byte(`{"likedIds":["x"]}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := fs.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `{"likedIds":["x"]}` {
		t.Fatalf("Load=%q", data)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("tmp file still present: %v", err)
	}
}
