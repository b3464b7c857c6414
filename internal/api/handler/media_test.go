package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rahma-center/community-api/internal/catalog"
	"github.com/rahma-center/community-api/internal/domain"
	"github.com/rahma-center/community-api/internal/drive"
)

// fakeDrive is an in-memory drive.Client for handler tests.
type fakeDrive struct {
	folders map[string][]drive.Entry
	media   map[string][]drive.File

	failChildren bool
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		folders: make(map[string][]drive.Entry),
		media:   make(map[string][]drive.File),
	}
}

func (d *fakeDrive) addFolder(parentID, id, name string) {
	d.folders[parentID] = append(d.folders[parentID], drive.Entry{ID: id, Name: name})
}

func (d *fakeDrive) addImages(folderID, prefix string, n int) {
	for i := 0; i < n; i++ {
		d.media[folderID] = append(d.media[folderID], drive.File{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			Name:        fmt.Sprintf("%s-%d.jpg", prefix, i),
			MimeType:    "image/jpeg",
			CreatedTime: "2025-05-01T10:00:00Z",
		})
	}
}

func (d *fakeDrive) ListChildren(_ context.Context, parentID string, _ bool) ([]drive.Entry, error) {
	if d.failChildren {
		return nil, drive.ErrUpstream
	}
	return d.folders[parentID], nil
}

func (d *fakeDrive) ListMedia(_ context.Context, parentID string, opts drive.ListMediaOptions) (*drive.MediaList, error) {
	files := d.media[parentID]
	if opts.PageSize > 0 && len(files) > opts.PageSize {
		files = files[:opts.PageSize]
	}
	return &drive.MediaList{Files: files}, nil
}

func (d *fakeDrive) GetFileMetadata(_ context.Context, id string) (*drive.File, error) {
	for _, files := range d.media {
		for _, f := range files {
			if f.ID == id {
				return &f, nil
			}
		}
	}
	return nil, drive.ErrUpstream
}

func (d *fakeDrive) AccessToken(context.Context) (string, error) {
	return "fake-token", nil
}

func newTestRouter(fs drive.Client, rootFolderID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	var cat *catalog.Catalog
	var resolver *catalog.Resolver
	if fs != nil {
		cat = catalog.New(fs, nil)
		resolver = catalog.NewResolver(fs, nil, 0)
	}
	h := NewMediaHandler(cat, resolver, fs, rootFolderID)

	r := gin.New()
	r.GET("/api/media", h.ListMedia)
	r.GET("/api/media/:id", h.GetMedia)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) domain.MediaPage {
	t.Helper()
	var page domain.MediaPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("response is not a media page: %v\nbody: %s", err, w.Body.String())
	}
	return page
}

func TestListMediaUnconfigured(t *testing.T) {
	r := newTestRouter(nil, "")

	w := doRequest(t, r, "/api/media")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if body["error"] != "Media folder not configured" {
		t.Errorf("error = %q, want configuration message", body["error"])
	}
}

func TestListMediaNestedFeed(t *testing.T) {
	fs := newFakeDrive()
	fs.addFolder("root", "youth", "Youth")
	fs.addFolder("youth", "ev1", "RetreatIKaro")
	fs.addFolder("youth", "ev2", "RetreatIKaro2")
	fs.addImages("ev1", "a", 3)
	fs.addImages("ev2", "b", 30)

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media?limit=5")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != feedCacheControl {
		t.Errorf("Cache-Control = %q, want %q", cc, feedCacheControl)
	}

	page := decodePage(t, w)
	if len(page.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(page.Items))
	}
	if page.NextPageToken == "" {
		t.Error("nextPageToken missing although more items exist")
	}
	for _, item := range page.Items {
		if item.EventType != domain.CategoryYouth {
			t.Errorf("item %s eventType = %q, want youth", item.ID, item.EventType)
		}
	}
}

func TestListMediaLimitClamping(t *testing.T) {
	fs := newFakeDrive()
	fs.addImages("root", "f", 60)

	r := newTestRouter(fs, "root")

	// Limits above the cap are clamped to 50.
	page := decodePage(t, doRequest(t, r, "/api/media?limit=500"))
	if len(page.Items) != 50 {
		t.Errorf("limit=500: got %d items, want 50", len(page.Items))
	}

	// Garbage falls back to the default of 20.
	page = decodePage(t, doRequest(t, r, "/api/media?limit=abc"))
	if len(page.Items) != 20 {
		t.Errorf("limit=abc: got %d items, want 20", len(page.Items))
	}

	// Zero is raised to the minimum.
	page = decodePage(t, doRequest(t, r, "/api/media?limit=0"))
	if len(page.Items) != 1 {
		t.Errorf("limit=0: got %d items, want 1", len(page.Items))
	}
}

func TestListMediaCategoryRouting(t *testing.T) {
	fs := newFakeDrive()
	fs.addFolder("root", "cat-spiritual", "Spiritual")
	fs.addImages("cat-spiritual", "s", 4)
	fs.addImages("root", "r", 2)

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media?limit=10&category=Spiritual")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	page := decodePage(t, w)
	if len(page.Items) != 4 {
		t.Fatalf("got %d items, want the 4 files from the spiritual folder", len(page.Items))
	}
	for _, item := range page.Items {
		if item.EventType != domain.CategorySpiritual {
			t.Errorf("item %s eventType = %q, want spiritual", item.ID, item.EventType)
		}
	}
}

func TestListMediaUnknownCategoryFallsBackToRoot(t *testing.T) {
	fs := newFakeDrive()
	fs.addImages("root", "r", 3)

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media?limit=10&category=basketweaving")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	page := decodePage(t, w)
	if len(page.Items) != 3 {
		t.Errorf("got %d items, want the 3 root files", len(page.Items))
	}
}

func TestListMediaResolverFailure(t *testing.T) {
	fs := newFakeDrive()
	fs.failChildren = true

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media?category=youth")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if body["error"] != "Unable to fetch media list" {
		t.Errorf("error = %q, want listing failure message", body["error"])
	}
}

// TestListMediaUpstreamFailureWithoutCategory: without a category there is no
// resolver round trip, so an upstream outage degrades to an empty page.
func TestListMediaUpstreamFailureWithoutCategory(t *testing.T) {
	fs := newFakeDrive()
	fs.failChildren = true

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	page := decodePage(t, w)
	if len(page.Items) != 0 || page.NextPageToken != "" {
		t.Errorf("got %d items, token %q; want empty page", len(page.Items), page.NextPageToken)
	}
}

func TestGetMedia(t *testing.T) {
	fs := newFakeDrive()
	fs.addImages("root", "f", 1)

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media/f-0")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["id"] != "f-0" {
		t.Errorf("id = %v, want f-0", body["id"])
	}
	if body["mimeType"] != "image/jpeg" {
		t.Errorf("mimeType = %v, want image/jpeg", body["mimeType"])
	}
	if body["streamUrl"] != drive.StreamURL("f-0") {
		t.Errorf("streamUrl = %v, want %q", body["streamUrl"], drive.StreamURL("f-0"))
	}
}

func TestGetMediaNotFound(t *testing.T) {
	fs := newFakeDrive()

	r := newTestRouter(fs, "root")
	w := doRequest(t, r, "/api/media/missing")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
