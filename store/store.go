// Package store owns load, save and merge of the root document. The
// document lives in a single JSON file; writes replace the whole file
// atomically so a partial document is never visible on disk.
package store

import "clubpoints/models"

// DocumentStore is the persistence boundary for the root document.
type DocumentStore interface {
	// Load reads the document at path. A missing file or one that fails
	// the schema sanity check yields (nil, nil): "no valid default
	// found", not an error.
	Load(path string) (*models.RootDocument, error)

	// ParseUpload parses an uploaded document and enforces the schema
	// check. Returns models.ErrInvalidSchema on failure.
	ParseUpload(raw []byte) (*models.RootDocument, error)

	// Save serializes the document and atomically replaces path.
	Save(doc *models.RootDocument, path string) error

	// Verify reports whether the uploaded bytes match the in-memory
	// document after canonicalization (sorted keys, normalized
	// whitespace).
	Verify(doc *models.RootDocument, uploaded []byte) (bool, error)

	// Merge appends deep copies of the selected resorts from incoming
	// whose ids are not already present in doc. Skipped resorts are
	// reported by their "display_name (id)" label.
	Merge(doc, incoming *models.RootDocument, selectedIDs []string) (merged int, skipped []string)
}
