package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when no video exists for the given id.
var ErrNotFound = errors.New("video not found")

// Store handles the video_data collection.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddVideo inserts a new video document with a generated id and
// server-assigned timestamps, and returns the stored record.
func (s *Store) AddVideo(v domain.Video) (*domain.Video, error) {
	v.ID = uuid.New().String()
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Type == "" {
		v.Type = domain.TypeShort
	}
	if v.Repository == "" {
		v.Repository = domain.RepoR2
	}
	if v.AudioTarget == "" {
		v.AudioTarget = domain.AudioNarration
	}

	segments, err := encodeSegments(v.Segments)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		INSERT INTO video_data
		(id, title, narration, narration_segments, category, type, repository, url, file_name, audio_target, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Narration, segments, v.Category, v.Type, v.Repository,
		v.URL, v.FileName, v.AudioTarget, v.Featured, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	return &v, nil
}

// GetVideo retrieves a video by id.
func (s *Store) GetVideo(id string) (*domain.Video, error) {
	row := s.db.QueryRow(selectColumns+" FROM video_data WHERE id = ?", id)
	v, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}
	return v, nil
}

// ListVideos returns the full collection, newest first.
func (s *Store) ListVideos() ([]domain.Video, error) {
	rows, err := s.db.Query(selectColumns + " FROM video_data ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []domain.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// UpdateVideo merges the given fields into the document with update.ID,
// bumping updated_at and leaving created_at untouched.
func (s *Store) UpdateVideo(update domain.Video) (*domain.Video, error) {
	existing, err := s.GetVideo(update.ID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if update.Title != "" {
		merged.Title = update.Title
	}
	if update.URL != "" {
		merged.URL = update.URL
	}
	if update.FileName != "" {
		merged.FileName = update.FileName
	}
	if update.Category != "" {
		merged.Category = update.Category
	}
	if update.Type != "" {
		merged.Type = update.Type
	}
	if update.Repository != "" {
		merged.Repository = update.Repository
	}
	if update.AudioTarget != "" {
		merged.AudioTarget = update.AudioTarget
	}
	merged.Narration = update.Narration
	merged.Segments = update.Segments
	merged.Featured = update.Featured
	merged.UpdatedAt = time.Now()

	segments, err := encodeSegments(merged.Segments)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		UPDATE video_data
		SET title = ?, narration = ?, narration_segments = ?, category = ?, type = ?,
		    repository = ?, url = ?, file_name = ?, audio_target = ?, featured = ?, updated_at = ?
		WHERE id = ?`,
		merged.Title, merged.Narration, segments, merged.Category, merged.Type,
		merged.Repository, merged.URL, merged.FileName, merged.AudioTarget,
		merged.Featured, merged.UpdatedAt, merged.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return &merged, nil
}

// DeleteVideo removes the document with the given id.
func (s *Store) DeleteVideo(id string) error {
	res, err := s.db.Exec("DELETE FROM video_data WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectColumns = `SELECT id, title, narration, narration_segments, category, type, repository, url, file_name, audio_target, featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*domain.Video, error) {
	var v domain.Video
	var segments string
	err := row.Scan(
		&v.ID, &v.Title, &v.Narration, &segments, &v.Category, &v.Type,
		&v.Repository, &v.URL, &v.FileName, &v.AudioTarget, &v.Featured,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(segments), &v.Segments); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	if len(v.Segments) == 0 {
		v.Segments = nil
	}
	return &v, nil
}

func encodeSegments(segments []domain.NarrationSegment) (string, error) {
	if segments == nil {
		segments = []domain.NarrationSegment{}
	}
	data, err := json.Marshal(segments)
	if err != nil {
		return "", fmt.Errorf("encode segments: %w", err)
	}
	return string(data), nil
}
