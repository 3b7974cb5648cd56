package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url     string
		wantExt string
	}{
		{url: "https://example.com/a.png", wantExt: ".png"},
		{url: "https://example.com/a.JPG?size=large", wantExt: ".jpg"},
		{url: "https://example.com/image", wantExt: ".img"},
		{url: "https://example.com/a.verylongext", wantExt: ".img"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Filename(tt.url)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("Filename(%q) = %q, want suffix %q", tt.url, got, tt.wantExt)
			}
			if len(got) != 32+len(tt.wantExt) {
				t.Errorf("Filename(%q) = %q, unexpected length", tt.url, got)
			}
			if Filename(tt.url) != got {
				t.Error("Filename is not stable")
			}
		})
	}
}

func TestFetch_CachesDownloads(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/seed.png"

	first, err := Fetch(context.Background(), url, Options{Dir: dir})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	second, err := Fetch(context.Background(), url, Options{Dir: dir})
	if err != nil {
		t.Fatalf("second Fetch() error: %v", err)
	}
	if first != second {
		t.Errorf("paths differ: %s vs %s", first, second)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
	if filepath.Dir(first) != dir {
		t.Errorf("cached in %s, want %s", filepath.Dir(first), dir)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("cached content = %q", data)
	}

	if _, err := Fetch(context.Background(), url, Options{Dir: dir, Refresh: true}); err != nil {
		t.Fatalf("refresh Fetch() error: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times after refresh, want 2", got)
	}
}

func TestFetch_RejectsNonHTTP(t *testing.T) {
	if _, err := Fetch(context.Background(), "file:///etc/passwd", Options{Dir: t.TempDir()}); err == nil {
		t.Error("Fetch() accepted a file:// URL")
	}
}
