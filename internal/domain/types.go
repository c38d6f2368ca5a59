package domain

import "time"

// VideoType distinguishes vertical short clips from horizontal long ones.
type VideoType string

const (
	TypeShort VideoType = "short"
	TypeLong  VideoType = "long"
)

// AudioTarget selects what text (if any) is shown as a caption during playback.
type AudioTarget string

const (
	AudioNone      AudioTarget = "none"
	AudioTitle     AudioTarget = "title"
	AudioNarration AudioTarget = "narration"
)

// Repository identifies where the media file itself is hosted.
type Repository string

const (
	RepoR2       Repository = "repo_r2"
	RepoTelegram Repository = "repo_telegram"
)

// Categories is the fixed set of content labels videos are filed under.
var Categories = []string{
	"هجمات مرعبة", "رعب حقيقي", "رعب الحيوانات", "أخطر المشاهد",
	"أهوال مرعبة", "رعب كوميدي", "لحظات مرعبة", "صدمة",
}

// ValidCategory reports whether name is one of the official categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// NarrationSegment is a caption fragment paired with the playback second at
// which it starts displaying. Segment order is display order; StartTime values
// are expected (but not enforced) to be non-decreasing.
type NarrationSegment struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"startTime"`
}

// Video is a single playable item with its metadata, as stored in the
// video_data collection.
type Video struct {
	ID          string             `json:"id"`
	URL         string             `json:"url"`
	FileName    string             `json:"fileName,omitempty"`
	Type        VideoType          `json:"type"`
	Title       string             `json:"title"`
	Category    string             `json:"category"`
	Narration   string             `json:"narration,omitempty"`
	Segments    []NarrationSegment `json:"narration_segments,omitempty"`
	AudioTarget AudioTarget        `json:"audio_target,omitempty"`
	Featured    bool               `json:"isFeatured,omitempty"`
	Repository  Repository         `json:"repository"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// WatchEntry records the last playback progress (0..1) for one video.
type WatchEntry struct {
	ID       string  `json:"id"`
	Progress float64 `json:"progress"`
}

// UserInteractions is the durable record of one profile's likes, dislikes,
// saves, watch progress and downloads. The JSON shape matches the persisted
// hadiqa_interactions_v4 blob.
type UserInteractions struct {
	LikedIDs           []string     `json:"likedIds"`
	DislikedIDs        []string     `json:"dislikedIds"`
	SavedIDs           []string     `json:"savedIds"`
	SavedCategoryNames []string     `json:"savedCategoryNames"`
	WatchHistory       []WatchEntry `json:"watchHistory"`
	DownloadedIDs      []string     `json:"downloadedIds"`
}

// EmptyInteractions returns an all-empty interaction state, the fallback when
// no persisted state exists or it cannot be decoded.
func EmptyInteractions() UserInteractions {
	return UserInteractions{
		LikedIDs:           []string{},
		DislikedIDs:        []string{},
		SavedIDs:           []string{},
		SavedCategoryNames: []string{},
		WatchHistory:       []WatchEntry{},
		DownloadedIDs:      []string{},
	}
}
