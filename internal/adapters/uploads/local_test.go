package uploads

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSavePoster_StoresFileWithFreshName(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	name, err := store.SavePoster(strings.NewReader("fake image bytes"), "My Poster.PNG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Ext(name) != ".png" {
		t.Errorf("extension = %q, want .png", filepath.Ext(name))
	}
	if strings.Contains(name, "My Poster") {
		t.Errorf("client filename leaked into stored name: %q", name)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSavePoster_RejectsNonImage(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"script.sh", "poster.pdf", "noext"} {
		if _, err := store.SavePoster(strings.NewReader("x"), name); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%s: error = %v, want ErrUnsupportedType", name, err)
		}
	}
}

func TestRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	name, err := store.SavePoster(strings.NewReader("x"), "p.jpg")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), name)); !errors.Is(err, os.ErrNotExist) {
		t.Error("poster still on disk after Remove")
	}

	// Removing twice is fine, and path traversal is ignored.
	if err := store.Remove(name); err != nil {
		t.Errorf("second Remove errored: %v", err)
	}
	if err := store.Remove("../outside.jpg"); err != nil {
		t.Errorf("traversal Remove errored: %v", err)
	}
}
