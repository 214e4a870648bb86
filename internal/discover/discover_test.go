package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanRecursiveSorted(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b", "episode2.mkv"))
	touch(t, filepath.Join(root, "a", "episode1.MP4"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "cover.jpg"))
	touch(t, filepath.Join(root, "movie.webm"))

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{
		filepath.Join(root, "a", "episode1.MP4"),
		filepath.Join(root, "b", "episode2.mkv"),
		filepath.Join(root, "movie.webm"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("Scan = %v, want %v", files, want)
	}
}

func TestScanSingleFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "movie.mkv")
	touch(t, file)

	files, err := Scan(file)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || files[0] != file {
		t.Fatalf("Scan = %v", files)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestIsMediaFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"movie.MKV", true},
		{"clip.mov", true},
		{"movie.srt", false},
		{"movie", false},
	}
	for _, tc := range cases {
		if got := IsMediaFile(tc.path); got != tc.want {
			t.Errorf("IsMediaFile(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
