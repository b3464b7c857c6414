package drive

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGoogleClientMissingCredentials(t *testing.T) {
	testCases := []struct {
		name string
		cfg  *GoogleConfig
	}{
		{"nil config", nil},
		{"missing email", &GoogleConfig{PrivateKey: "key"}},
		{"missing key", &GoogleConfig{ServiceAccountEmail: "svc@example.iam.gserviceaccount.com"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGoogleClient(tc.cfg)
			if !errors.Is(err, ErrNotConfigured) {
				t.Errorf("err = %v, want ErrNotConfigured", err)
			}
		})
	}
}

func TestStreamURL(t *testing.T) {
	url := StreamURL("abc123")

	if !strings.HasPrefix(url, "https://www.googleapis.com/drive/v3/files/abc123") {
		t.Errorf("url = %q, want the files download endpoint", url)
	}
	if !strings.Contains(url, "alt=media") {
		t.Errorf("url = %q, want alt=media for byte download", url)
	}
}

func TestToFileDuration(t *testing.T) {
	f := toFile(driveFile{
		ID:       "v1",
		MimeType: "video/mp4",
		VideoMediaMetadata: &struct {
			DurationMillis string `json:"durationMillis"`
		}{DurationMillis: "93500"},
	})

	if f.DurationSeconds != 93.5 {
		t.Errorf("DurationSeconds = %v, want 93.5", f.DurationSeconds)
	}
}

func TestToFileNoVideoMetadata(t *testing.T) {
	f := toFile(driveFile{ID: "i1", MimeType: "image/png"})

	if f.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %v, want 0 for images", f.DurationSeconds)
	}
}
