// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

// Package catalog keeps the list of uploaded media records in a JSON document.
package catalog

import (
	"errors"
	"fmt"

	"github.com/tomtom215/sitepulse/internal/jsondoc"
	"github.com/tomtom215/sitepulse/internal/models"
)

// ErrNotFound is returned by RemoveByID when no record has the given id.
var ErrNotFound = errors.New("media record not found")

// Catalog is the durable list of media records, in insertion order.
type Catalog struct {
	doc *jsondoc.Document[[]models.MediaRecord]
}

// Open loads or creates the catalog document at path.
func Open(path string) (*Catalog, error) {
	doc, err := jsondoc.Open(path, func() []models.MediaRecord {
		return []models.MediaRecord{}
	})
	if err != nil {
		return nil, fmt.Errorf("open media catalog: %w", err)
	}
	return &Catalog{doc: doc}, nil
}

// List returns every record in insertion order.
func (c *Catalog) List() ([]models.MediaRecord, error) {
	records, err := c.doc.Read()
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return records, nil
}

// Append persists a batch of new records after the existing ones.
func (c *Catalog) Append(records []models.MediaRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := c.doc.Update(func(current []models.MediaRecord) ([]models.MediaRecord, error) {
		return append(current, records...), nil
	})
	if err != nil {
		return fmt.Errorf("append media: %w", err)
	}
	return nil
}

// RemoveByID deletes the record with the given id and returns it so the
// caller can remove the underlying file. The order of the remaining records
// is preserved.
func (c *Catalog) RemoveByID(id string) (models.MediaRecord, error) {
	var removed models.MediaRecord

	err := c.doc.Update(func(current []models.MediaRecord) ([]models.MediaRecord, error) {
		for i := range current {
			if current[i].ID == id {
				removed = current[i]
				return append(current[:i], current[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.MediaRecord{}, ErrNotFound
		}
		return models.MediaRecord{}, fmt.Errorf("remove media %s: %w", id, err)
	}

	return removed, nil
}
