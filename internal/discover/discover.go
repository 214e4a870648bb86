// Package discover walks directory trees for media containers that may
// carry embedded subtitles.
package discover

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// mediaExtensions lists the container formats the probers understand.
var mediaExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".m4v":  {},
	".webm": {},
	".mov":  {},
	".avi":  {},
}

// IsMediaFile reports whether the path has a recognized container extension.
func IsMediaFile(path string) bool {
	_, ok := mediaExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Scan walks root recursively and returns the media files beneath it in
// sorted order. A root that is itself a media file yields a single entry.
func Scan(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if IsMediaFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
