package drive

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const (
	apiBase    = "https://www.googleapis.com/drive/v3"
	folderMime = "application/vnd.google-apps.folder"

	fileFields = "id, name, mimeType, createdTime, description, thumbnailLink, videoMediaMetadata(durationMillis)"
)

// GoogleConfig holds service-account credentials and client options.
type GoogleConfig struct {
	ServiceAccountEmail string
	// PrivateKey is the PEM key; literal "\n" sequences from env files are
	// normalized to newlines.
	PrivateKey string
}

// GoogleClient implements Client against the Drive v3 REST API using a
// service-account JWT for auth.
type GoogleClient struct {
	http   *resty.Client
	tokens oauth2.TokenSource
}

// NewGoogleClient creates a Drive client. Returns ErrNotConfigured when
// credentials are missing.
func NewGoogleClient(cfg *GoogleConfig) (*GoogleClient, error) {
	if cfg == nil || cfg.ServiceAccountEmail == "" || cfg.PrivateKey == "" {
		return nil, ErrNotConfigured
	}

	jwtCfg := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{"https://www.googleapis.com/auth/drive.readonly"},
		TokenURL:   google.JWTTokenURL,
	}

	client := resty.New()
	client.SetBaseURL(apiBase)

	return &GoogleClient{
		http:   client,
		tokens: oauth2.ReuseTokenSource(nil, jwtCfg.TokenSource(context.Background())),
	}, nil
}

// AccessToken returns a live bearer token from the cached token source.
func (c *GoogleClient) AccessToken(ctx context.Context) (string, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("%w: token: %v", ErrUpstream, err)
	}
	return tok.AccessToken, nil
}

// driveFile mirrors the Drive v3 files resource fields we request.
type driveFile struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	MimeType           string `json:"mimeType"`
	CreatedTime        string `json:"createdTime"`
	Description        string `json:"description"`
	ThumbnailLink      string `json:"thumbnailLink"`
	VideoMediaMetadata *struct {
		DurationMillis string `json:"durationMillis"`
	} `json:"videoMediaMetadata"`
}

type driveFileList struct {
	NextPageToken string      `json:"nextPageToken"`
	Files         []driveFile `json:"files"`
}

// ListChildren lists direct children of parentID, optionally folders only.
func (c *GoogleClient) ListChildren(ctx context.Context, parentID string, onlyFolders bool) ([]Entry, error) {
	clauses := []string{
		fmt.Sprintf("'%s' in parents", parentID),
		"trashed = false",
	}
	if onlyFolders {
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", folderMime))
	}

	var list driveFileList
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(mustToken(ctx, c)).
		SetQueryParams(map[string]string{
			"q":                         strings.Join(clauses, " and "),
			"fields":                    "files(id, name)",
			"supportsAllDrives":         "true",
			"includeItemsFromAllDrives": "true",
		}).
		SetResult(&list).
		Get("/files")
	if err != nil {
		return nil, fmt.Errorf("%w: list children of %s: %v", ErrUpstream, parentID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: list children of %s: status %d", ErrUpstream, parentID, resp.StatusCode())
	}

	entries := make([]Entry, 0, len(list.Files))
	for _, f := range list.Files {
		entries = append(entries, Entry{ID: f.ID, Name: f.Name})
	}
	return entries, nil
}

// ListMedia lists video/image files directly under parentID with the
// provider's native pagination.
func (c *GoogleClient) ListMedia(ctx context.Context, parentID string, opts ListMediaOptions) (*MediaList, error) {
	q := strings.Join([]string{
		fmt.Sprintf("'%s' in parents", parentID),
		"trashed = false",
		"(mimeType contains 'video/' or mimeType contains 'image/')",
	}, " and ")

	params := map[string]string{
		"q":                         q,
		"fields":                    "nextPageToken, files(" + fileFields + ")",
		"supportsAllDrives":         "true",
		"includeItemsFromAllDrives": "true",
	}
	if opts.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(opts.PageSize)
	}
	if opts.PageToken != "" {
		params["pageToken"] = opts.PageToken
	}
	if opts.OrderByCreatedDesc {
		params["orderBy"] = "createdTime desc"
	}

	var list driveFileList
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(mustToken(ctx, c)).
		SetQueryParams(params).
		SetResult(&list).
		Get("/files")
	if err != nil {
		return nil, fmt.Errorf("%w: list media in %s: %v", ErrUpstream, parentID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: list media in %s: status %d", ErrUpstream, parentID, resp.StatusCode())
	}

	out := &MediaList{NextPageToken: list.NextPageToken}
	for _, f := range list.Files {
		out.Files = append(out.Files, toFile(f))
	}
	return out, nil
}

// GetFileMetadata fetches metadata for a single file by id.
func (c *GoogleClient) GetFileMetadata(ctx context.Context, id string) (*File, error) {
	var f driveFile
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(mustToken(ctx, c)).
		SetQueryParams(map[string]string{
			"fields":            fileFields,
			"supportsAllDrives": "true",
		}).
		SetResult(&f).
		Get("/files/" + id)
	if err != nil {
		return nil, fmt.Errorf("%w: get metadata for %s: %v", ErrUpstream, id, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: get metadata for %s: status %d", ErrUpstream, id, resp.StatusCode())
	}

	file := toFile(f)
	return &file, nil
}

// StreamURL returns the provider byte-download URL for a file. Callers attach
// the AccessToken bearer themselves.
func StreamURL(id string) string {
	return apiBase + "/files/" + id + "?alt=media&supportsAllDrives=true"
}

func toFile(f driveFile) File {
	out := File{
		ID:            f.ID,
		Name:          f.Name,
		MimeType:      f.MimeType,
		CreatedTime:   f.CreatedTime,
		Description:   f.Description,
		ThumbnailLink: f.ThumbnailLink,
	}
	if f.VideoMediaMetadata != nil && f.VideoMediaMetadata.DurationMillis != "" {
		if ms, err := strconv.ParseInt(f.VideoMediaMetadata.DurationMillis, 10, 64); err == nil {
			out.DurationSeconds = float64(ms) / 1000
		}
	}
	return out
}

// mustToken resolves a bearer token for a request; an empty token lets the
// request proceed and fail with the provider's 401 instead of panicking here.
func mustToken(ctx context.Context, c *GoogleClient) string {
	tok, err := c.AccessToken(ctx)
	if err != nil {
		return ""
	}
	return tok
}
