// Package feed keeps a client-facing copy of the video list fresh by polling
// the authoritative store, and ranks it for the trend view.
package feed

import (
	"context"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

// DefaultInterval is how often the poller re-fetches the video list.
const DefaultInterval = 5 * time.Second

// Source provides the authoritative video list.
type Source interface {
	Videos(ctx context.Context) ([]domain.Video, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]domain.Video, error)

// Videos calls f.
func (f SourceFunc) Videos(ctx context.Context) ([]domain.Video, error) { return f(ctx) }

// Poller periodically pulls the video list from a Source and swaps its held
// copy only when the content actually changed, so downstream consumers are
// not redrawn for identical data. Fetch failures keep the previously held
// list in place (stale but available).
type Poller struct {
	source   Source
	interval time.Duration
	onChange func([]domain.Video)

	mu     sync.RWMutex
	videos []domain.Video
}

// NewPoller creates a Poller over source. onChange, if non-nil, is invoked
// with the new list after every replacement. interval <= 0 uses
// DefaultInterval.
func NewPoller(source Source, interval time.Duration, onChange func([]domain.Video)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{source: source, interval: interval, onChange: onChange}
}

// Run refreshes once immediately and then on every interval tick until ctx is
// cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh fetches the list once and reports whether the held list was
// replaced. Errors are logged, never surfaced: the stale list stays.
func (p *Poller) Refresh(ctx context.Context) bool {
	videos, err := p.source.Videos(ctx)
	if err != nil {
		log.Printf("feed refresh failed, keeping stale list: %v", err)
		return false
	}

	p.mu.Lock()
	if reflect.DeepEqual(p.videos, videos) {
		p.mu.Unlock()
		return false
	}
	p.videos = videos
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(videos)
	}
	return true
}

// Videos returns the currently held list.
func (p *Poller) Videos() []domain.Video {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.videos
}

// WithoutDisliked filters videos the profile has hidden.
func WithoutDisliked(videos []domain.Video, dislikedIDs []string) []domain.Video {
	hidden := make(map[string]bool, len(dislikedIDs))
	for _, id := range dislikedIDs {
		hidden[id] = true
	}
	out := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		if !hidden[v.ID] {
			out = append(out, v)
		}
	}
	return out
}
