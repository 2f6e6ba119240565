// Package jsondb persists the whole catalog document as a single JSON file,
// mirroring the layout of the original db.json.
package jsondb

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/mtihani/core/catalog"
)

type DB struct {
	path string
}

var _ catalog.Store = (*DB)(nil)

func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating document directory")
		}
	}
	return &DB{path: path}, nil
}

// Load reads the whole document; a missing file yields an empty document with
// default settings.
func (db *DB) Load() (catalog.Document, error) {
	data, err := os.ReadFile(db.path)
	if os.IsNotExist(err) {
		return catalog.NewDocument(), nil
	}
	if err != nil {
		return catalog.Document{}, errors.Wrap(err, "reading document")
	}

	doc := catalog.NewDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return catalog.Document{}, errors.Wrap(err, "decoding document")
	}
	return doc, nil
}

// Save writes the document to a temp file in the same directory and renames it
// over the old one, so a crashed write never leaves a half-written document.
func (db *DB) Save(doc catalog.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}

	tmp, err := os.CreateTemp(filepath.Dir(db.path), ".db-*.json")
	if err != nil {
		return errors.Wrap(err, "creating temp document")
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing document")
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing document")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing document")
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "setting document permissions")
	}
	return errors.Wrap(os.Rename(tmp.Name(), db.path), "replacing document")
}
