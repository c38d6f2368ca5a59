package feed

import (
	"fmt"
	"sort"

	"github.com/roooooh55roooooh55-star/Roohdodo/internal/domain"
)

// trendLimit caps the trend view.
const trendLimit = 20

// Stats are the cosmetic view/like counters shown next to a video. They are
// fabricated deterministically from the media URL, so the same video always
// displays the same numbers.
type Stats struct {
	Views int `json:"views"`
	Likes int `json:"likes"`
}

// DeterministicStats fabricates display counters from url using the js-style
// string hash (h = c + (h<<5) - h). An empty url yields zeros.
func DeterministicStats(url string) Stats {
	if url == "" {
		return Stats{}
	}
	var h int32
	for _, c := range url {
		h = int32(c) + (h << 5) - h
	}
	abs := int(h)
	if abs < 0 {
		abs = -abs
	}
	return Stats{
		Views: abs%900000 + 100000,
		Likes: abs%45000 + 5000,
	}
}

// FormatCount renders a counter in compact K/M notation.
func FormatCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// Trending ranks videos for the trend view: hidden ones are dropped, featured
// ones come first, the rest sort by fabricated view count descending, and the
// result is capped at 20 entries.
func Trending(videos []domain.Video, excludedIDs []string) []domain.Video {
	ranked := WithoutDisliked(videos, excludedIDs)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Featured != ranked[j].Featured {
			return ranked[i].Featured
		}
		return DeterministicStats(ranked[i].URL).Views > DeterministicStats(ranked[j].URL).Views
	})

	if len(ranked) > trendLimit {
		ranked = ranked[:trendLimit]
	}
	return ranked
}
