package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rahma-center/community-api/internal/cache"
	"github.com/rahma-center/community-api/internal/drive"
)

// DefaultCategoryTTL is how long a resolved category-folder mapping stays fresh.
const DefaultCategoryTTL = 10 * time.Minute

// categoryFolderNames are the subfolder names (compared case-insensitively)
// recognized as category folders under the root. Anything else is ignored.
var categoryFolderNames = []string{"education", "youth", "community", "charity", "spiritual"}

// Resolver maps recognized category names to their Drive folder ids beneath a
// root folder, caching the mapping per root id.
type Resolver struct {
	fs    drive.Client
	cache *cache.TTL[map[string]string]
	ttl   time.Duration
}

// NewResolver creates a Resolver. Zero ttl uses DefaultCategoryTTL; nil clock
// uses the real clock.
func NewResolver(fs drive.Client, clock cache.Clock, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCategoryTTL
	}
	return &Resolver{
		fs:    fs,
		cache: cache.New[map[string]string](clock),
		ttl:   ttl,
	}
}

// Resolve returns the category-name to folder-id mapping for rootFolderID.
// Calls within the TTL window return the cached mapping without an upstream
// request. An upstream failure is returned as-is; no stale or partial mapping
// is synthesized.
func (r *Resolver) Resolve(ctx context.Context, rootFolderID string) (map[string]string, error) {
	if mapping, ok := r.cache.Get(rootFolderID); ok {
		return mapping, nil
	}

	children, err := r.fs.ListChildren(ctx, rootFolderID, true)
	if err != nil {
		return nil, fmt.Errorf("resolve category folders under %s: %w", rootFolderID, err)
	}

	mapping := make(map[string]string)
	for _, child := range children {
		name := strings.ToLower(strings.TrimSpace(child.Name))
		for _, target := range categoryFolderNames {
			if name == target {
				mapping[target] = child.ID
				break
			}
		}
	}

	r.cache.Set(rootFolderID, mapping, r.ttl)
	return mapping, nil
}
