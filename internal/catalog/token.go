package catalog

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// pageToken is the opaque cursor handed to feed clients: a shuffle seed fixing
// the permutation for one pagination sequence, and a zero-based page index.
type pageToken struct {
	seed uint32
	page int
}

// String encodes the token in its wire form, "seed:pageIndex".
func (t pageToken) String() string {
	return fmt.Sprintf("%d:%d", t.seed, t.page)
}

func (t pageToken) next() pageToken {
	return pageToken{seed: t.seed, page: t.page + 1}
}

// parsePageToken decodes a client-held token. Absent or malformed input never
// fails: it yields a freshly seeded token at page zero so the feed restarts
// with a new shuffle order instead of erroring.
func parsePageToken(raw string) pageToken {
	if raw == "" {
		return pageToken{seed: newSeed()}
	}

	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return pageToken{seed: newSeed()}
	}

	seed64, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return pageToken{seed: newSeed()}
	}

	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 0 {
		page = 0
	}

	return pageToken{seed: uint32(seed64), page: page}
}

func newSeed() uint32 {
	return rand.Uint32()
}
