package catalog

import "testing"

func TestParsePageTokenWellFormed(t *testing.T) {
	tok := parsePageToken("12345:3")

	if tok.seed != 12345 {
		t.Errorf("seed = %d, want 12345", tok.seed)
	}
	if tok.page != 3 {
		t.Errorf("page = %d, want 3", tok.page)
	}
}

func TestParsePageTokenMalformed(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no separator", "garbage"},
		{"non-numeric seed", "abc:2"},
		{"seed overflow", "99999999999999:1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tok := parsePageToken(tc.raw)
			if tok.page != 0 {
				t.Errorf("parsePageToken(%q).page = %d, want 0", tc.raw, tok.page)
			}
		})
	}
}

// TestParsePageTokenFreshSeeds verifies that malformed tokens mint new seeds
// rather than collapsing onto a fixed value.
func TestParsePageTokenFreshSeeds(t *testing.T) {
	seeds := make(map[uint32]bool)
	for i := 0; i < 20; i++ {
		seeds[parsePageToken("").seed] = true
	}
	if len(seeds) < 2 {
		t.Errorf("20 fresh tokens yielded %d distinct seeds", len(seeds))
	}
}

func TestParsePageTokenNegativePage(t *testing.T) {
	tok := parsePageToken("42:-7")

	if tok.seed != 42 {
		t.Errorf("seed = %d, want 42", tok.seed)
	}
	if tok.page != 0 {
		t.Errorf("page = %d, want 0", tok.page)
	}
}

func TestPageTokenRoundTrip(t *testing.T) {
	orig := pageToken{seed: 4294967295, page: 17}

	parsed := parsePageToken(orig.String())
	if parsed != orig {
		t.Errorf("round trip: got %+v, want %+v", parsed, orig)
	}
}

func TestPageTokenNext(t *testing.T) {
	tok := pageToken{seed: 9, page: 4}

	next := tok.next()
	if next.seed != 9 || next.page != 5 {
		t.Errorf("next() = %+v, want seed 9 page 5", next)
	}
	if next.String() != "9:5" {
		t.Errorf("next().String() = %q, want \"9:5\"", next.String())
	}
}
