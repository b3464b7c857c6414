// Package drive exposes the narrow slice of the Google Drive v3 API the media
// catalog consumes: folder listing, media listing, file metadata, and a bearer
// token for byte streaming. Provider credential machinery stays behind Client.
package drive

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates missing service-account credentials or folder ids.
var ErrNotConfigured = errors.New("drive: service account not configured")

// ErrUpstream indicates a failed Drive API call (network, auth, rate limit).
var ErrUpstream = errors.New("drive: upstream unavailable")

// Entry is a folder or file reference returned by ListChildren.
type Entry struct {
	ID   string
	Name string
}

// File is media file metadata as reported by the provider.
type File struct {
	ID              string
	Name            string
	MimeType        string
	CreatedTime     string // RFC 3339
	Description     string
	ThumbnailLink   string
	DurationSeconds float64 // zero for images
}

// MediaList is one provider page of media files.
type MediaList struct {
	Files         []File
	NextPageToken string
}

// ListMediaOptions controls a ListMedia call.
type ListMediaOptions struct {
	PageSize           int
	PageToken          string
	OrderByCreatedDesc bool
}

// Client is the FileStore capability consumed by the catalog and the streaming
// handlers.
type Client interface {
	// ListChildren lists direct children of parentID. With onlyFolders set,
	// only subfolders are returned.
	ListChildren(ctx context.Context, parentID string, onlyFolders bool) ([]Entry, error)

	// ListMedia lists media files (video/* and image/* MIME types) directly
	// under parentID, using the provider's native pagination.
	ListMedia(ctx context.Context, parentID string, opts ListMediaOptions) (*MediaList, error)

	// GetFileMetadata fetches metadata for a single file.
	GetFileMetadata(ctx context.Context, id string) (*File, error)

	// AccessToken returns a bearer token usable for direct byte-range
	// streaming against the provider.
	AccessToken(ctx context.Context) (string, error)
}
