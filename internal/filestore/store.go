// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package filestore writes uploaded media into a single upload directory
// under collision-resistant names.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidName is returned when a stored name would escape the upload directory.
var ErrInvalidName = errors.New("invalid stored name")

// Store manages the upload directory.
type Store struct {
	dir string
	now func() time.Time
}

// New creates the upload directory if needed and returns a Store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Sanitize replaces every character outside [A-Za-z0-9._-] with an underscore.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// StoredName builds "<unixMillis>-<random 0..1e6>-<sanitized name>".
func (s *Store) StoredName(originalName string) string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" +
		strconv.Itoa(rand.IntN(1_000_000)) + "-" +
		Sanitize(originalName)
}

// Ingest copies r into the upload directory under a freshly generated name
// and returns that name with the number of bytes written. A partially written
// file is removed before the error is returned.
func (s *Store) Ingest(originalName string, r io.Reader) (string, int64, error) {
	storedName := s.StoredName(originalName)
	path := filepath.Join(s.dir, storedName)

	// O_EXCL guarantees an existing file is never overwritten.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:gosec // name is sanitized
	if err != nil {
		return "", 0, fmt.Errorf("create %s: %w", storedName, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write %s: %w", storedName, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("close %s: %w", storedName, err)
	}

	return storedName, n, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *Store) Remove(storedName string) error {
	path, err := s.path(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", storedName, err)
	}
	return nil
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(storedName string) bool {
	path, err := s.path(storedName)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// path resolves a stored name inside the upload directory, rejecting names
// that contain path separators or dot segments.
func (s *Store) path(storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." ||
		strings.ContainsAny(storedName, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, storedName)
	}
	return filepath.Join(s.dir, storedName), nil
}
