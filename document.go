package leaguedoc

import (
	"context"
	"time"
)

// Source labels documents by where they came from. It is carried through
// chunks so searches can be restricted to a subset of the corpus.
type Source string

// Known document sources.
const (
	SourceWebsite    Source = "website"
	SourceRules      Source = "rules"
	SourceRepository Source = "repository"
)

// Document represents the extracted text of a single crawled page.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Tokens      int       `json:"tokens"`
	Position    int       `json:"position"`
	Source      Source    `json:"source,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
	Language    string    `json:"language,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document and all associated chunks.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Source    *Source `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
