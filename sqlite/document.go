package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/leaguedoc/leaguedoc"
)

// Compile-time interface verification.
var _ leaguedoc.DocumentService = (*DocumentService)(nil)

// DocumentService implements leaguedoc.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document. A document from the same
// source URL replaces the previous version, which keeps re-ingestion
// idempotent.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *leaguedoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}
	if doc.Source == "" {
		doc.Source = leaguedoc.SourceWebsite
	}

	// Replace any earlier crawl of the same page.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE source_url = ?", doc.SourceURL); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_url, title, content, content_hash, tokens, position, source, content_type, language, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash, doc.Tokens,
		doc.Position, string(doc.Source), doc.ContentType, doc.Language,
		doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*leaguedoc.Document, error) {
	var doc leaguedoc.Document
	var source, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, content, content_hash, tokens, position, source, content_type, language, fetched_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Content, &doc.ContentHash,
		&doc.Tokens, &doc.Position, &source, &doc.ContentType, &doc.Language, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, leaguedoc.Errorf(leaguedoc.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.Source = leaguedoc.Source(source)
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter leaguedoc.DocumentFilter) ([]*leaguedoc.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, content, content_hash, tokens, position, source, content_type, language, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}

	query.WriteString(" ORDER BY position ASC, fetched_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*leaguedoc.Document
	for rows.Next() {
		var doc leaguedoc.Document
		var source, fetchedAt string

		if err := rows.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Content, &doc.ContentHash,
			&doc.Tokens, &doc.Position, &source, &doc.ContentType, &doc.Language, &fetchedAt); err != nil {
			return nil, err
		}

		doc.Source = leaguedoc.Source(source)
		doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document and its chunks.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return leaguedoc.Errorf(leaguedoc.ENOTFOUND, "document not found")
	}

	return nil
}
