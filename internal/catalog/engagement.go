package catalog

import "hash/fnv"

// engagementCounts returns synthetic likes/views for an item. There is no real
// engagement store behind the feed yet; counts are derived from the file id so
// the same item reports the same numbers on every request.
// TODO: replace with real counters once the engagement endpoints land.
func engagementCounts(id string) (likes, views int) {
	h := fnv.New32a()
	h.Write([]byte(id))
	s := h.Sum32()

	likes = int(s%1500) + 100
	views = int((s/7)%25000) + 500
	return likes, views
}
