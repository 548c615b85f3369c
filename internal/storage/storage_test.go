package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := LocalStore{Dir: dir}

	url, err := s.Save(context.Background(), "Lobby.PNG", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}
	b, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "png-bytes" {
		t.Fatalf("content = %q", b)
	}
}

func TestLocalStoreRejectsNonImages(t *testing.T) {
	s := LocalStore{Dir: t.TempDir()}
	for _, name := range []string{"shell.php", "noext", "x.svg"} {
		if _, err := s.Save(context.Background(), name, strings.NewReader("x")); !errors.Is(err, ErrUnsupportedImage) {
			t.Fatalf("%s: err = %v, want ErrUnsupportedImage", name, err)
		}
	}
}

func TestNewDefaultsToLocal(t *testing.T) {
	s, err := New("", "uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ls, ok := s.(LocalStore); !ok || ls.Dir != "uploads" {
		t.Fatalf("store = %#v", s)
	}
}
