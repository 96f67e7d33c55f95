package document

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// LoadFS walks fsys and merges every JSON, JSONC and YAML document into one
// bundle in lexical path order. A nil fsys yields an empty bundle.
func LoadFS(fsys fs.FS) (Bundle, error) {
	var bundle Bundle
	if fsys == nil {
		return bundle, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("document: read %s: %w", path, err)
		}
		parsed, _, err := Parse(data, path)
		if err != nil {
			return err
		}
		bundle.Merge(parsed)
		return nil
	})
	if err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

// IsDocumentFile reports whether path has a supported document extension.
func IsDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
