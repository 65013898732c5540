package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestKeyFor(t *testing.T) {
	svg := []byte("<svg/>")

	k := KeyFor(svg, "png", 2)
	if k != KeyFor(svg, "png", 2) {
		t.Error("KeyFor should be deterministic")
	}
	if len(k.Digest) != 64 {
		t.Errorf("Digest length = %d, want 64", len(k.Digest))
	}

	others := []Key{
		KeyFor(svg, "png", 4),
		KeyFor(svg, "pdf", 0),
		KeyFor([]byte("<svg></svg>"), "png", 2),
	}
	for _, o := range others {
		if o.String() == k.String() {
			t.Errorf("key collision: %s", o)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Digest: "abc", Format: "png", Scale: 2}, "abc@2x.png"},
		{Key{Digest: "abc", Format: "png", Scale: 1.5}, "abc@1.5x.png"},
		{Key{Digest: "abc", Format: "pdf"}, "abc.pdf"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestNull(t *testing.T) {
	ctx := context.Background()
	var s Store = Null{}
	k := KeyFor([]byte("x"), "pdf", 0)

	if err := s.Put(ctx, k, []byte("data")); err != nil {
		t.Errorf("Put error: %v", err)
	}
	data, hit, err := s.Get(ctx, k)
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
}

func newTestStore(t *testing.T, maxAge time.Duration) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), maxAge)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return s
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)
	defer s.Close()
	k := KeyFor([]byte("<svg/>"), "png", 2)

	if _, hit, err := s.Get(ctx, k); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}
	if err := s.Put(ctx, k, []byte("png bytes")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	data, hit, err := s.Get(ctx, k)
	if err != nil || !hit || string(data) != "png bytes" {
		t.Errorf("Get = %q, %v, %v; want png bytes, true, nil", data, hit, err)
	}

	// Artifacts are stored verbatim under their key.
	raw, err := os.ReadFile(filepath.Join(s.Dir(), k.Digest[:2], k.String()))
	if err != nil || string(raw) != "png bytes" {
		t.Errorf("artifact file = %q, %v", raw, err)
	}

	if err := s.Put(ctx, k, []byte("newer")); err != nil {
		t.Fatal(err)
	}
	if data, _, _ := s.Get(ctx, k); string(data) != "newer" {
		t.Errorf("Get after overwrite = %q, want newer", data)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)
	k := KeyFor([]byte("<svg/>"), "pdf", 0)
	if err := s.Put(ctx, k, []byte("pdf")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(s.Dir(), k.Digest[:2]))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".put-") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

// age backdates the artifact for k.
func age(t *testing.T, s *FileStore, k Key, d time.Duration) {
	t.Helper()
	old := time.Now().Add(-d)
	if err := os.Chtimes(s.path(k), old, old); err != nil {
		t.Fatal(err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)
	k := KeyFor([]byte("<svg/>"), "png", 2)
	if err := s.Put(ctx, k, []byte("png")); err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := s.Get(ctx, k); !hit {
		t.Fatal("fresh artifact should hit")
	}
	age(t, s, k, 2*time.Hour)
	if _, hit, _ := s.Get(ctx, k); hit {
		t.Error("expired artifact should miss")
	}
	if _, err := os.Stat(s.path(k)); !os.IsNotExist(err) {
		t.Error("expired artifact should be removed")
	}
}

func TestFileStorePrune(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, time.Hour)

	fresh := KeyFor([]byte("a"), "png", 2)
	stale := []Key{KeyFor([]byte("b"), "png", 2), KeyFor([]byte("c"), "pdf", 0)}
	for _, k := range append([]Key{fresh}, stale...) {
		if err := s.Put(ctx, k, []byte(k.Format)); err != nil {
			t.Fatal(err)
		}
	}
	for _, k := range stale {
		age(t, s, k, 2*time.Hour)
	}

	n, err := s.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune error: %v", err)
	}
	if n != 2 {
		t.Errorf("Prune removed %d artifacts, want 2", n)
	}
	if _, hit, _ := s.Get(ctx, fresh); !hit {
		t.Error("Prune removed a fresh artifact")
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 0)
	for _, src := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, KeyFor([]byte(src), "png", 2), []byte(src)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d artifacts, want 3", n)
	}
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still holds %d entries", len(entries))
	}
}

func TestFileStoreClearCanceled(t *testing.T) {
	s := newTestStore(t, 0)
	if err := s.Put(context.Background(), KeyFor([]byte("a"), "pdf", 0), []byte("a")); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Clear(ctx); err != context.Canceled {
		t.Errorf("Clear error = %v, want context.Canceled", err)
	}
}

func TestNewFileStoreBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(filepath.Join(file, "sub"), 0); err == nil {
		t.Error("NewFileStore below a regular file should fail")
	}
}
