package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner recursively finds C source files in directories
type Scanner struct {
	Excludes []string
}

// NewScanner creates a new file scanner with exclusion patterns
func NewScanner(excludes []string) *Scanner {
	return &Scanner{Excludes: excludes}
}

// ScanPath scans a file or directory for C source files.
// A file named explicitly is returned whatever its extension.
func (s *Scanner) ScanPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files/dirs with errors
		}

		if d.IsDir() {
			if filePath != path && s.shouldExclude(filePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if isCSource(filePath) && !s.shouldExclude(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	return files, err
}

// ScanPaths scans multiple paths, de-duplicating by absolute path
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			absPath, _ := filepath.Abs(f)
			if !seen[absPath] {
				seen[absPath] = true
				allFiles = append(allFiles, absPath)
			}
		}
	}

	sort.Strings(allFiles)
	return allFiles, nil
}

func isCSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".c" || ext == ".h"
}

func (s *Scanner) shouldExclude(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range s.Excludes {
		if exclude == "" {
			continue
		}
		if base == exclude {
			return true
		}
		if strings.Contains(path, string(filepath.Separator)+exclude+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
