package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"clubpoints/models"
	"clubpoints/utils"
)

const tmpSuffix = ".tmp"

// FileStore is the production DocumentStore backed by a local JSON file.
type FileStore struct{}

// NewFileStore returns a file-backed document store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load implements DocumentStore. Auto-load failures are logged, never
// surfaced: startup treats them as "start empty".
func (s *FileStore) Load(path string) (*models.RootDocument, error) {
	logger := utils.GetLogger()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Auto-load failed", zap.String("path", path), zap.Error(err))
		}
		return nil, nil
	}
	var doc models.RootDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warn("Auto-load: not valid JSON", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
	// Presence check only: resorts may be empty on disk.
	if doc.SchemaVersion == nil || doc.Resorts == nil {
		logger.Warn("Auto-load: missing schema_version or resorts", zap.String("path", path))
		return nil, nil
	}
	doc.Normalize()
	logger.Info("Auto-loaded document",
		zap.String("path", path),
		zap.Int("resorts", len(doc.Resorts)))
	return &doc, nil
}

// ParseUpload implements DocumentStore.
func (s *FileStore) ParseUpload(raw []byte) (*models.RootDocument, error) {
	var doc models.RootDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSchema, err)
	}
	if doc.SchemaVersion == nil || len(doc.Resorts) == 0 {
		return nil, fmt.Errorf("%w: schema_version and a non-empty resorts list are required", models.ErrInvalidSchema)
	}
	doc.Normalize()
	return &doc, nil
}

// Save implements DocumentStore. The document is written to a temp file
// next to the target and renamed over it.
func (s *FileStore) Save(doc *models.RootDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	utils.GetLogger().Info("Saved document", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// Verify implements DocumentStore.
func (s *FileStore) Verify(doc *models.RootDocument, uploaded []byte) (bool, error) {
	current, err := canonicalize(doc)
	if err != nil {
		return false, err
	}
	var parsed any
	if err := json.Unmarshal(uploaded, &parsed); err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrInvalidSchema, err)
	}
	theirs, err := json.Marshal(parsed)
	if err != nil {
		return false, err
	}
	return bytes.Equal(current, theirs), nil
}

// canonicalize round-trips the document through a generic tree so map keys
// come out sorted and struct field order stops mattering.
func canonicalize(doc *models.RootDocument) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// Merge implements DocumentStore.
func (s *FileStore) Merge(doc, incoming *models.RootDocument, selectedIDs []string) (int, []string) {
	existing := make(map[string]struct{}, len(doc.Resorts))
	for _, r := range doc.Resorts {
		existing[r.ID] = struct{}{}
	}
	byID := make(map[string]*models.Resort, len(incoming.Resorts))
	for _, r := range incoming.Resorts {
		byID[r.ID] = r
	}

	merged := 0
	var skipped []string
	for _, id := range selectedIDs {
		r, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := existing[id]; dup {
			skipped = append(skipped, fmt.Sprintf("%s (%s)", r.DisplayName, r.ID))
			continue
		}
		doc.Resorts = append(doc.Resorts, r.Clone())
		existing[id] = struct{}{}
		merged++
	}
	utils.GetLogger().Info("Merged resorts", zap.Int("merged", merged), zap.Strings("skipped", skipped))
	return merged, skipped
}

// ResortExport wraps a single resort in a standalone document, mirroring
// the full document's schema so the export can be merged back later.
func ResortExport(r *models.Resort) *models.RootDocument {
	return &models.RootDocument{
		SchemaVersion: "2.0.0",
		Resorts:       []*models.Resort{r.Clone()},
	}
}
