package extract

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sidecars returns the .sup files under root that have no SubRip sibling yet.
// These are bitmap subtitles left next to media by earlier tools; an OCR pass
// can turn them into text without re-extracting anything.
func Sidecars(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	var found []string
	consider := func(path string) {
		if !strings.EqualFold(filepath.Ext(path), ".sup") {
			return
		}
		srt, _ := swapExtension(path, "srt")
		if _, err := os.Stat(srt); err == nil {
			return
		}
		found = append(found, path)
	}

	if !info.IsDir() {
		consider(root)
		return found, nil
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		consider(path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
