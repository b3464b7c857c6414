package domain

import "strings"

// MediaType classifies a file as playable video, viewable image, or neither.
type MediaType string

const (
	MediaTypeVideo       MediaType = "video"
	MediaTypeImage       MediaType = "image"
	MediaTypeUnsupported MediaType = ""
)

// mediaMimeTypes is the allow-list of concrete MIME subtypes served by the feed.
// Files with any other MIME type are silently skipped.
var mediaMimeTypes = map[string]MediaType{
	"video/mp4":       MediaTypeVideo,
	"video/webm":      MediaTypeVideo,
	"video/quicktime": MediaTypeVideo,
	"image/jpeg":      MediaTypeImage,
	"image/png":       MediaTypeImage,
	"image/webp":      MediaTypeImage,
	"image/gif":       MediaTypeImage,
}

// ClassifyMime resolves a MIME type string to a MediaType.
// Unknown or empty MIME types classify as MediaTypeUnsupported.
func ClassifyMime(mimeType string) MediaType {
	if t, ok := mediaMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]; ok {
		return t
	}
	return MediaTypeUnsupported
}

// EventCategory labels media by the kind of community event it came from.
type EventCategory string

const (
	CategoryEducation    EventCategory = "education"
	CategorySpiritual    EventCategory = "spiritual"
	CategoryCommunity    EventCategory = "community"
	CategoryCharity      EventCategory = "charity"
	CategoryYouth        EventCategory = "youth"
	CategoryVolunteering EventCategory = "volunteering"
	CategoryGeneral      EventCategory = "general"
)

// knownCategories covers every category a media item may carry, general excluded.
var knownCategories = map[EventCategory]bool{
	CategoryEducation:    true,
	CategorySpiritual:    true,
	CategoryCommunity:    true,
	CategoryCharity:      true,
	CategoryYouth:        true,
	CategoryVolunteering: true,
}

// ParseCategory maps a folder or query string to an EventCategory.
// Matching is case-insensitive; anything unrecognized resolves to general.
func ParseCategory(name string) EventCategory {
	c := EventCategory(strings.ToLower(strings.TrimSpace(name)))
	if knownCategories[c] {
		return c
	}
	return CategoryGeneral
}

// MediaItem is one playable or viewable asset in the feed.
// URL and ThumbnailURL point at this service's streaming proxies, never at the
// provider directly. Title is the containing event-folder name, not the filename.
type MediaItem struct {
	ID           string        `json:"id"`
	Type         MediaType     `json:"type"`
	URL          string        `json:"url"`
	ThumbnailURL string        `json:"thumbnail"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         string        `json:"date"`
	EventType    EventCategory `json:"eventType"`
	Likes        int           `json:"likes"`
	Views        int           `json:"views"`
	Duration     float64       `json:"duration,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
}

// MediaPage is one page of the media feed. NextPageToken is present only when
// more items may exist.
type MediaPage struct {
	Items         []MediaItem `json:"items"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}
