package sammelband

import (
	"context"
	"strings"
	"time"
)

// Document is a compiled sammelband. Each session owns at most one document
// per format.
type Document struct {
	ID        string    `json:"id"`
	Format    Format    `json:"format"`
	Content   []byte    `json:"-"`
	ETag      string    `json:"etag"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if strings.ContainsFunc(d.ID, func(r rune) bool {
		return !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) {
		return Errorf(EINVALID, "document ID %q contains invalid characters", d.ID)
	}
	if f, err := ParseFormat(string(d.Format)); err != nil || f != d.Format {
		return Errorf(EINVALID, "document format %q invalid", d.Format)
	}
	return nil
}

// Filename is the name offered to users downloading the document.
func (d *Document) Filename() string {
	return "sammelband." + string(d.Format)
}

// DocumentStore persists compiled documents.
type DocumentStore interface {
	// SaveDocument writes doc, replacing any earlier document with the same
	// ID and format. ETag and UpdatedAt are set on success.
	SaveDocument(ctx context.Context, doc *Document) error

	// FindDocument retrieves the document for id in the given format.
	// Returns ENOTFOUND if it does not exist.
	FindDocument(ctx context.Context, id string, format Format) (*Document, error)

	// DeleteDocuments removes every format stored for id.
	// Returns ENOTFOUND if nothing was stored.
	DeleteDocuments(ctx context.Context, id string) error
}
