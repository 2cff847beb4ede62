// Package fs stores compiled documents as files in the public directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sammelband/sammelband"
)

// Ensure DocumentStore implements sammelband.DocumentStore at compile time.
var _ sammelband.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps one file per session and format, named
// sammelband-<id>.<format>. Writes go to a temporary file first and are
// renamed into place, so readers never observe a partial document.
type DocumentStore struct {
	dir string
	now func() time.Time
}

// NewDocumentStore creates a DocumentStore writing into dir.
func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{dir: dir, now: time.Now}
}

// Dir returns the directory documents are stored in.
func (s *DocumentStore) Dir() string {
	return s.dir
}

// Filename returns the on-disk file name for a session's document.
func Filename(id string, format sammelband.Format) string {
	return "sammelband-" + id + "." + string(format)
}

func (s *DocumentStore) path(id string, format sammelband.Format) string {
	return filepath.Join(s.dir, Filename(id, format))
}

// SaveDocument writes doc atomically, replacing an earlier version.
func (s *DocumentStore) SaveDocument(ctx context.Context, doc *sammelband.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	final := s.path(doc.ID, doc.Format)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, doc.Content, 0644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("committing document: %w", err)
	}

	doc.ETag = etag(doc.Content)
	doc.UpdatedAt = s.now().UTC()
	return nil
}

// FindDocument reads the document for id in format.
func (s *DocumentStore) FindDocument(ctx context.Context, id string, format sammelband.Format) (*sammelband.Document, error) {
	doc := &sammelband.Document{ID: id, Format: format}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	path := s.path(id, format)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sammelband.Errorf(sammelband.ENOTFOUND, "document not found")
	} else if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc.Content = content
	doc.ETag = etag(content)
	doc.UpdatedAt = info.ModTime().UTC()
	return doc, nil
}

// DeleteDocuments removes the documents stored for id in every format.
func (s *DocumentStore) DeleteDocuments(ctx context.Context, id string) error {
	if err := (&sammelband.Document{ID: id, Format: sammelband.FormatHTML}).Validate(); err != nil {
		return err
	}

	var removed int
	for _, format := range sammelband.Formats {
		err := os.Remove(s.path(id, format))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return fmt.Errorf("removing document: %w", err)
		}
		removed++
	}

	if removed == 0 {
		return sammelband.Errorf(sammelband.ENOTFOUND, "document not found")
	}
	return nil
}

// etag returns a strong entity tag derived from the content hash.
func etag(content []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(content), 16) + `"`
}
