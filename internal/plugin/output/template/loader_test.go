package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func testDefaults() fstest.MapFS {
	return fstest.MapFS{
		"a.css.tmpl": {Data: []byte("embedded a\n")},
		"b.js.tmpl":  {Data: []byte("embedded b\n")},
		"README.md":  {Data: []byte("not a template\n")},
	}
}

func TestLoader_Load(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("testplugin", testDefaults()).WithCustomBase(tmpDir)

	t.Run("loads embedded template when no custom exists", func(t *testing.T) {
		content, fromCustom, err := loader.Load("a.css.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fromCustom {
			t.Error("expected embedded template, got custom")
		}
		if string(content) != "embedded a\n" {
			t.Errorf("content = %q", content)
		}
	})

	t.Run("loads custom template when it exists", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "testplugin", "a.css.tmpl")
		if err := os.MkdirAll(filepath.Dir(customPath), 0o755); err != nil {
			t.Fatalf("failed to create custom dir: %v", err)
		}
		if err := os.WriteFile(customPath, []byte("custom a\n"), 0o644); err != nil {
			t.Fatalf("failed to write custom template: %v", err)
		}

		content, fromCustom, err := loader.Load("a.css.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fromCustom || string(content) != "custom a\n" {
			t.Errorf("Load() = %q, fromCustom %v", content, fromCustom)
		}
	})

	t.Run("missing template is an error", func(t *testing.T) {
		if _, _, err := loader.Load("missing.tmpl"); err == nil {
			t.Error("expected error for missing template")
		}
	})
}

func TestLoader_CustomPath(t *testing.T) {
	loader := New("tailwind", testDefaults()).WithCustomBase("/tmp/custom")

	if got, want := loader.CustomDir(), filepath.Join("/tmp/custom", "tailwind"); got != want {
		t.Errorf("CustomDir() = %s, want %s", got, want)
	}
	if got, want := loader.CustomPath("a.css.tmpl"), filepath.Join("/tmp/custom", "tailwind", "a.css.tmpl"); got != want {
		t.Errorf("CustomPath() = %s, want %s", got, want)
	}
}

func TestLoader_List(t *testing.T) {
	names, err := New("p", testDefaults()).List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if diff := cmp.Diff([]string{"a.css.tmpl", "b.js.tmpl"}, names); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Dump(t *testing.T) {
	loader := New("p", testDefaults()).WithCustomBase(t.TempDir())

	out, err := loader.Dump("a.css.tmpl", false)
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	if !loader.HasCustomTemplate("a.css.tmpl") {
		t.Fatalf("Dump() did not create %s", out)
	}

	if _, err := loader.Dump("a.css.tmpl", false); !errors.Is(err, ErrTemplateExists) {
		t.Errorf("second Dump() error = %v, want ErrTemplateExists", err)
	}
	if _, err := loader.Dump("a.css.tmpl", true); err != nil {
		t.Errorf("forced Dump() error: %v", err)
	}
}

func TestLoader_DumpAll_PartialExisting(t *testing.T) {
	loader := New("p", testDefaults()).WithCustomBase(t.TempDir())
	if _, err := loader.Dump("a.css.tmpl", false); err != nil {
		t.Fatalf("Dump() error: %v", err)
	}

	dumped, err := loader.DumpAll(false)
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("DumpAll() error = %v, want ErrTemplateExists", err)
	}
	if diff := cmp.Diff([]string{loader.CustomPath("b.js.tmpl")}, dumped); diff != "" {
		t.Errorf("DumpAll() mismatch (-want +got):\n%s", diff)
	}

	dumped, err = loader.DumpAll(true)
	if err != nil || len(dumped) != 2 {
		t.Errorf("forced DumpAll() = %v, %v", dumped, err)
	}
}
