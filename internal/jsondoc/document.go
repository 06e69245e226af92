// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package jsondoc persists a single value as a JSON document on disk.
//
// Every Read loads the whole document and every Update rewrites it, which
// keeps the file as the single source of truth and is only suitable for
// small documents. Mutations are serialized by an in-process mutex so two
// concurrent Updates on the same Document cannot lose each other's changes.
// Writes go to a temporary file in the same directory and are renamed into
// place, so a crash mid-write leaves the previous document intact.
package jsondoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Document is a JSON file holding one value of type T.
type Document[T any] struct {
	path  string
	empty func() T
	mu    sync.Mutex
}

// Open prepares a document at path, creating its directory and writing the
// value returned by empty when the file does not exist yet.
func Open[T any](path string, empty func() T) (*Document[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create document directory: %w", err)
	}

	d := &Document[T]{path: path, empty: empty}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return d, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat document %s: %w", path, err)
	}

	if err := d.saveLocked(empty()); err != nil {
		return nil, err
	}
	return d, nil
}

// Path returns the document file path.
func (d *Document[T]) Path() string {
	return d.path
}

// Read loads the current document value.
func (d *Document[T]) Read() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadLocked()
}

// Update loads the document, applies fn and writes the result back. If fn
// returns an error nothing is written and the error is returned unchanged.
func (d *Document[T]) Update(fn func(T) (T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, err := d.loadLocked()
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	return d.saveLocked(next)
}

// loadLocked reads and decodes the file (must be called with mu held).
// A missing, empty or null document decodes to the empty value.
func (d *Document[T]) loadLocked() (T, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d.empty(), nil
		}
		var zero T
		return zero, fmt.Errorf("read document %s: %w", d.path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return d.empty(), nil
	}

	value := d.empty()
	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("decode document %s: %w", d.path, err)
	}
	return value, nil
}

// saveLocked encodes value and atomically replaces the file (must be called with mu held).
func (d *Document[T]) saveLocked(value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write document %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close document %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace document %s: %w", d.path, err)
	}
	return nil
}
