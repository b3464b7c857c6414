package catalog

import (
	"context"
	"fmt"

	"github.com/rahma-center/community-api/internal/drive"
)

// fakeStore is an in-memory drive.Client that counts upstream calls.
type fakeStore struct {
	// folders maps a parent id to its direct subfolders.
	folders map[string][]drive.Entry
	// media maps a folder id to its direct media files.
	media map[string][]drive.File
	// nextTokens maps a folder id to the provider token returned by a flat
	// listing of that folder.
	nextTokens map[string]string

	listChildrenCalls int
	listMediaCalls    int
	metadataCalls     int

	failChildren bool
	failMedia    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders:    make(map[string][]drive.Entry),
		media:      make(map[string][]drive.File),
		nextTokens: make(map[string]string),
	}
}

func (s *fakeStore) addFolder(parentID, id, name string) {
	s.folders[parentID] = append(s.folders[parentID], drive.Entry{ID: id, Name: name})
}

func (s *fakeStore) addFile(folderID, id, mimeType string) {
	s.media[folderID] = append(s.media[folderID], drive.File{
		ID:          id,
		Name:        id + ".bin",
		MimeType:    mimeType,
		CreatedTime: "2025-05-01T10:00:00Z",
	})
}

// addFiles adds n image files with ids prefix-0 .. prefix-(n-1).
func (s *fakeStore) addFiles(folderID, prefix string, n int) {
	for i := 0; i < n; i++ {
		s.addFile(folderID, fmt.Sprintf("%s-%d", prefix, i), "image/jpeg")
	}
}

func (s *fakeStore) calls() int {
	return s.listChildrenCalls + s.listMediaCalls + s.metadataCalls
}

func (s *fakeStore) ListChildren(_ context.Context, parentID string, onlyFolders bool) ([]drive.Entry, error) {
	s.listChildrenCalls++
	if s.failChildren {
		return nil, drive.ErrUpstream
	}
	return s.folders[parentID], nil
}

func (s *fakeStore) ListMedia(_ context.Context, parentID string, opts drive.ListMediaOptions) (*drive.MediaList, error) {
	s.listMediaCalls++
	if s.failMedia {
		return nil, drive.ErrUpstream
	}

	files := s.media[parentID]
	if opts.PageSize > 0 && len(files) > opts.PageSize {
		files = files[:opts.PageSize]
	}
	return &drive.MediaList{
		Files:         files,
		NextPageToken: s.nextTokens[parentID],
	}, nil
}

func (s *fakeStore) GetFileMetadata(_ context.Context, id string) (*drive.File, error) {
	s.metadataCalls++
	for _, files := range s.media {
		for _, f := range files {
			if f.ID == id {
				return &f, nil
			}
		}
	}
	return nil, drive.ErrUpstream
}

func (s *fakeStore) AccessToken(context.Context) (string, error) {
	return "fake-token", nil
}
