package interactions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the on-disk name of the persisted blob, kept from the
// original client's storage key.
const DefaultFileName = "hadiqa_interactions_v4.json"

// FileStorage persists the interaction blob as a JSON file, written
// atomically via a temp file.
type FileStorage struct {
	Path string
}

// Load reads the blob. A missing file is not an error: it returns (nil, nil)
// so the store falls back to the empty default.
func (f FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read interactions file: %w", err)
	}
	return data, nil
}

// Save writes the blob atomically, creating parent directories as needed.
func (f FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
