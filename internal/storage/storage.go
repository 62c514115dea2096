// Package storage reads and writes the files the sweep pipeline touches.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
)

// ErrInputUnavailable is returned when a source or mapping file cannot be read
var ErrInputUnavailable = errors.New("input unavailable")

// Store wraps an afs service for local paths
type Store struct {
	fs afs.Service
}

// New creates a store backed by afs
func New() *Store {
	return &Store{fs: afs.New()}
}

// Read returns the full content of path
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	URL, err := location(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnavailable, path, err)
	}
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrInputUnavailable, path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: failed to open %s", ErrInputUnavailable, path)
	}
	object, err := s.fs.Object(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrInputUnavailable, path, err)
	}
	if object.IsDir() {
		return nil, fmt.Errorf("%w: failed to open %s: is a directory", ErrInputUnavailable, path)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInputUnavailable, path, err)
	}
	return data, nil
}

// Write replaces the content of path
func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	URL, err := location(path)
	if err != nil {
		return err
	}
	if err := s.fs.Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	URL, err := location(path)
	if err != nil {
		return false, err
	}
	return s.fs.Exists(ctx, URL)
}

// Remove deletes path; a missing file is not an error
func (s *Store) Remove(ctx context.Context, path string) error {
	ok, err := s.Exists(ctx, path)
	if err != nil || !ok {
		return err
	}
	URL, err := location(path)
	if err != nil {
		return err
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func location(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}
