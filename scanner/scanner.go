// Package scanner discovers expression sheets under a directory tree.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner walks a directory tree and collects sheet files by extension.
type Scanner struct {
	rootDir    string
	extensions []string
}

// New returns a scanner rooted at rootDir. Extensions may be given
// with or without the leading dot; with no extensions every regular
// file is a sheet.
func New(rootDir string, extensions ...string) *Scanner {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &Scanner{
		rootDir:    rootDir,
		extensions: normalized,
	}
}

// Scan returns the paths of every matching sheet under the root,
// sorted so batch runs derive sheets in a stable order.
func (s *Scanner) Scan() ([]string, error) {
	var sheets []string

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if s.isSheet(path) {
			sheets = append(sheets, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(sheets)
	return sheets, nil
}

func (s *Scanner) isSheet(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
