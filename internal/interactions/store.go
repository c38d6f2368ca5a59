// Package interactions holds the single-profile record of likes, dislikes,
// saves, watch progress and downloads, persisted on every mutation.
package interactions

import (
	"encoding/json"
	"fmt"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

// Storage abstracts the persisted blob the interaction state lives in.
// Load returns (nil, nil) when no state has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Store manages one profile's interaction state. State is rehydrated once at
// construction and written back after every mutation. All methods are meant to
// be called from a single goroutine (event-handler style); the HTTP layer
// serializes access.
type Store struct {
	storage Storage
	state   domain.UserInteractions
}

// New loads the persisted state from storage. Absent or undecodable data
// silently yields the all-empty default; application start never fails on a
// corrupt blob.
func New(storage Storage) *Store {
	s := &Store{storage: storage, state: domain.EmptyInteractions()}
	data, err := storage.Load()
	if err != nil || len(data) == 0 {
		return s
	}
	var loaded domain.UserInteractions
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s
	}
	s.state = normalize(loaded)
	return s
}

// normalize replaces nil slices so the serialized form always carries every
// field as an array, matching the original persisted shape.
func normalize(u domain.UserInteractions) domain.UserInteractions {
	if u.LikedIDs == nil {
		u.LikedIDs = []string{}
	}
	if u.DislikedIDs == nil {
		u.DislikedIDs = []string{}
	}
	if u.SavedIDs == nil {
		u.SavedIDs = []string{}
	}
	if u.SavedCategoryNames == nil {
		u.SavedCategoryNames = []string{}
	}
	if u.WatchHistory == nil {
		u.WatchHistory = []domain.WatchEntry{}
	}
	if u.DownloadedIDs == nil {
		u.DownloadedIDs = []string{}
	}
	return u
}

// State returns a deep copy of the current interaction state.
func (s *Store) State() domain.UserInteractions {
	out := s.state
	out.LikedIDs = append([]string{}, s.state.LikedIDs...)
	out.DislikedIDs = append([]string{}, s.state.DislikedIDs...)
	out.SavedIDs = append([]string{}, s.state.SavedIDs...)
	out.SavedCategoryNames = append([]string{}, s.state.SavedCategoryNames...)
	out.WatchHistory = append([]domain.WatchEntry{}, s.state.WatchHistory...)
	out.DownloadedIDs = append([]string{}, s.state.DownloadedIDs...)
	return out
}

// ToggleLike flips membership of id in the liked set.
func (s *Store) ToggleLike(id string) error {
	s.state.LikedIDs = toggle(s.state.LikedIDs, id)
	return s.persist()
}

// ToggleDislike flips membership of id in the disliked (hidden) set.
func (s *Store) ToggleDislike(id string) error {
	s.state.DislikedIDs = toggle(s.state.DislikedIDs, id)
	return s.persist()
}

// ToggleSave flips membership of id in the saved set.
func (s *Store) ToggleSave(id string) error {
	s.state.SavedIDs = toggle(s.state.SavedIDs, id)
	return s.persist()
}

// ToggleSaveCategory flips membership of a category label in the saved set.
func (s *Store) ToggleSaveCategory(name string) error {
	s.state.SavedCategoryNames = toggle(s.state.SavedCategoryNames, name)
	return s.persist()
}

// RecordProgress upserts the last watched fraction (0..1) for id. At most one
// entry per video is kept.
func (s *Store) RecordProgress(id string, progress float64) error {
	history := s.state.WatchHistory[:0]
	for _, e := range s.state.WatchHistory {
		if e.ID != id {
			history = append(history, e)
		}
	}
	s.state.WatchHistory = append(history, domain.WatchEntry{ID: id, Progress: progress})
	return s.persist()
}

// MarkDownloaded adds id to the downloaded set. Union semantics: repeated
// calls are no-ops, never removals.
func (s *Store) MarkDownloaded(id string) error {
	for _, d := range s.state.DownloadedIDs {
		if d == id {
			return s.persist()
		}
	}
	s.state.DownloadedIDs = append(s.state.DownloadedIDs, id)
	return s.persist()
}

// Liked reports whether id is in the liked set.
func (s *Store) Liked(id string) bool { return contains(s.state.LikedIDs, id) }

// Disliked reports whether id is in the disliked set.
func (s *Store) Disliked(id string) bool { return contains(s.state.DislikedIDs, id) }

// Saved reports whether id is in the saved set.
func (s *Store) Saved(id string) bool { return contains(s.state.SavedIDs, id) }

// Progress returns the recorded watch fraction for id, or 0 when none.
func (s *Store) Progress(id string) float64 {
	for _, e := range s.state.WatchHistory {
		if e.ID == id {
			return e.Progress
		}
	}
	return 0
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode interactions: %w", err)
	}
	if err := s.storage.Save(data); err != nil {
		return fmt.Errorf("save interactions: %w", err)
	}
	return nil
}

func toggle(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
