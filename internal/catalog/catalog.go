// Package catalog implements the folder-backed media catalog: category folder
// resolution, nested event-folder traversal, deterministic seeded shuffling,
// opaque-token pagination, per-page deduplication, and TTL response caching in
// front of the Drive file store.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahma-center/community-api/internal/cache"
	"github.com/rahma-center/community-api/internal/domain"
	"github.com/rahma-center/community-api/internal/drive"
	"github.com/rahma-center/community-api/internal/logger"
)

// DefaultListTTL is how long one listed page stays cached.
const DefaultListTTL = 60 * time.Second

// Seed salts keep the source order, the source expansion, the per-source item
// order, and the final page order on independent permutations of the same seed.
const (
	sourceSeedSalt uint32 = 0x9e37
	expandSeedSalt uint32 = 0x85eb
	finalSeedSalt  uint32 = 0xc2b2
	itemSourceSalt uint32 = 31
	itemPageSalt   uint32 = 17
)

// sourceFetchLimit bounds how many files one upstream call pulls from a single
// event folder (Drive caps pageSize at 100 anyway).
const sourceFetchLimit = 100

// Options tunes a Catalog. The zero value gives production defaults.
type Options struct {
	ListTTL time.Duration
	Clock   cache.Clock
}

// Catalog assembles deterministic, shuffled, deduplicated media pages from a
// folder hierarchy. All state is in-memory and rebuildable from the file store.
type Catalog struct {
	fs      drive.Client
	lists   *cache.TTL[*domain.MediaPage]
	listTTL time.Duration
}

// New creates a Catalog backed by fs.
func New(fs drive.Client, opts *Options) *Catalog {
	ttl := DefaultListTTL
	var clock cache.Clock
	if opts != nil {
		if opts.ListTTL > 0 {
			ttl = opts.ListTTL
		}
		clock = opts.Clock
	}
	return &Catalog{
		fs:      fs,
		lists:   cache.New[*domain.MediaPage](clock),
		listTTL: ttl,
	}
}

// mediaSource is one folder media is drawn from: an event folder (level-2, or
// level-1 when no deeper nesting exists) together with its display title and
// the category hint derived from its level-1 ancestor.
type mediaSource struct {
	folderID string
	title    string
	category domain.EventCategory
}

// List returns one page of the media feed for folderID.
//
// pageToken is the opaque cursor from a previous page, or empty to start a new
// pagination sequence with a fresh shuffle seed. category, when non-empty,
// overrides the folder-derived category on every returned item.
//
// Upstream failures degrade to an empty page; the feed is best-effort content,
// so the caller never sees an error here.
func (c *Catalog) List(ctx context.Context, folderID string, pageSize int, pageToken, category string) *domain.MediaPage {
	key := listCacheKey(folderID, pageSize, pageToken, category)
	if page, ok := c.lists.Get(key); ok {
		return page
	}

	page, err := c.list(ctx, folderID, pageSize, pageToken, category)
	if err != nil {
		logger.CtxWarn(ctx, "media listing degraded to empty page: folder=%s: %v", folderID, err)
		return &domain.MediaPage{Items: []domain.MediaItem{}}
	}

	c.lists.Set(key, page, c.listTTL)
	return page
}

func (c *Catalog) list(ctx context.Context, folderID string, pageSize int, rawToken, category string) (*domain.MediaPage, error) {
	start := time.Now()
	tok := parsePageToken(rawToken)

	level1, err := c.fs.ListChildren(ctx, folderID, true)
	if err != nil {
		return nil, err
	}
	if len(level1) == 0 {
		// Flat folder: no event subfolders, list media directly.
		return c.listFlat(ctx, folderID, pageSize, rawToken, category)
	}

	sources, err := c.expandSources(ctx, level1, tok.seed)
	if err != nil {
		return nil, err
	}

	sampled := len(sources)
	if max := maxSourcesFor(pageSize); sampled > max {
		sampled = max
	}
	sources = sources[:sampled]
	perSource := (pageSize + sampled - 1) / sampled

	seen := make(map[string]bool)
	var collected []domain.MediaItem
	for i, src := range sources {
		files, err := c.sourceMedia(ctx, src.folderID)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}

		files = shuffle(files, tok.seed+uint32(i)*itemSourceSalt+uint32(tok.page)*itemPageSalt)

		offset := tok.page * perSource
		take := perSource
		if tok.page == 0 && len(files) < perSource+perSource/2 {
			// Small folder: show its full content on the first page instead
			// of truncating it with the window heuristic.
			offset, take = 0, len(files)
		}
		if offset >= len(files) {
			continue
		}
		end := offset + take
		if end > len(files) {
			end = len(files)
		}

		for _, f := range files[offset:end] {
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			collected = append(collected, buildItem(f, src.title, src.category, category, true))
		}
	}

	items := shuffle(collected, tok.seed+finalSeedSalt)
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	page := &domain.MediaPage{Items: items}
	if len(items) == pageSize {
		page.NextPageToken = tok.next().String()
	}

	logger.With(logger.Fields{
		logger.FieldSeed:       tok.seed,
		logger.FieldPage:       tok.page,
		logger.FieldCount:      len(items),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug(ctx, "assembled media page from %d sources", sampled)

	return page, nil
}

// expandSources walks one level below the level-1 folders. Level-2 folders
// become independent sources titled by their own name with the level-1 name as
// category hint; a level-1 folder without subfolders is itself the source.
// Both levels are shuffled on seed-salted permutations so sampling order is
// stable per seed.
func (c *Catalog) expandSources(ctx context.Context, level1 []drive.Entry, seed uint32) ([]mediaSource, error) {
	level1 = shuffle(level1, seed+sourceSeedSalt)

	var sources []mediaSource
	for _, l1 := range level1 {
		hint := domain.ParseCategory(l1.Name)

		children, err := c.fs.ListChildren(ctx, l1.ID, true)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			sources = append(sources, mediaSource{folderID: l1.ID, title: l1.Name, category: hint})
			continue
		}
		for _, l2 := range children {
			sources = append(sources, mediaSource{folderID: l2.ID, title: l2.Name, category: hint})
		}
	}

	return shuffle(sources, seed+expandSeedSalt), nil
}

// sourceMedia lists one event folder and drops files outside the MIME
// allow-list.
func (c *Catalog) sourceMedia(ctx context.Context, folderID string) ([]drive.File, error) {
	list, err := c.fs.ListMedia(ctx, folderID, drive.ListMediaOptions{
		PageSize:           sourceFetchLimit,
		OrderByCreatedDesc: true,
	})
	if err != nil {
		return nil, err
	}

	files := make([]drive.File, 0, len(list.Files))
	for _, f := range list.Files {
		if domain.ClassifyMime(f.MimeType) == domain.MediaTypeUnsupported {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// listFlat lists media directly under folderID, newest first, passing the
// provider's native pagination token straight through. No synthetic seed is
// involved in this branch.
func (c *Catalog) listFlat(ctx context.Context, folderID string, pageSize int, rawToken, category string) (*domain.MediaPage, error) {
	list, err := c.fs.ListMedia(ctx, folderID, drive.ListMediaOptions{
		PageSize:           pageSize,
		PageToken:          rawToken,
		OrderByCreatedDesc: true,
	})
	if err != nil {
		return nil, err
	}

	title := "Media"
	if category != "" {
		title = category
	}

	page := &domain.MediaPage{
		Items:         make([]domain.MediaItem, 0, len(list.Files)),
		NextPageToken: list.NextPageToken,
	}
	for _, f := range list.Files {
		if domain.ClassifyMime(f.MimeType) == domain.MediaTypeUnsupported {
			continue
		}
		page.Items = append(page.Items, buildItem(f, title, domain.CategoryGeneral, category, false))
	}
	return page, nil
}

// buildItem maps provider file metadata to a feed item. override, when set, is
// the explicitly requested category and wins over the folder-derived hint.
func buildItem(f drive.File, title string, hint domain.EventCategory, override string, tagged bool) domain.MediaItem {
	mediaType := domain.ClassifyMime(f.MimeType)
	streamURL := "/api/media/stream/" + f.ID

	item := domain.MediaItem{
		ID:           f.ID,
		Type:         mediaType,
		URL:          streamURL,
		ThumbnailURL: streamURL,
		Title:        title,
		Description:  f.Description,
		Date:         f.CreatedTime,
		EventType:    hint,
		Duration:     f.DurationSeconds,
	}

	if mediaType == domain.MediaTypeVideo {
		item.URL = "/api/media/stream-video/" + f.ID
		item.ThumbnailURL = f.ThumbnailLink
	}
	if override != "" {
		item.EventType = domain.EventCategory(strings.ToLower(strings.TrimSpace(override)))
	}
	if item.Description == "" && tagged {
		item.Description = fmt.Sprintf("Event: %s", title)
	}
	if item.Date == "" {
		item.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if tagged && title != "" {
		item.Tags = []string{title}
	}

	item.Likes, item.Views = engagementCounts(f.ID)
	return item
}

// maxSourcesFor bounds how many event folders one page samples from, keeping
// upstream call volume proportional to the page size.
func maxSourcesFor(pageSize int) int {
	n := pageSize/8 + 2
	if n > 6 {
		n = 6
	}
	return n
}

func listCacheKey(folderID string, pageSize int, pageToken, category string) string {
	return fmt.Sprintf("%s:%d:%s:%s", folderID, pageSize, pageToken, category)
}
