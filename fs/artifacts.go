// Package fs provides file-based hand-off between pipeline stages,
// so discovery, crawling and indexing can run as separate commands.
package fs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leaguedoc/leaguedoc"
)

// SaveURLList writes URL records one per line. The file is written to
// a temporary path and renamed, so readers never see a partial list.
func SaveURLList(path string, records []leaguedoc.URLRecord) error {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.URL)
		b.WriteString("\n")
	}
	return writeAtomic(path, []byte(b.String()))
}

// LoadURLList reads a URL list written by SaveURLList. Blank lines and
// lines starting with # are skipped, so hand-edited lists work too.
func LoadURLList(path string) ([]leaguedoc.URLRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []leaguedoc.URLRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, leaguedoc.URLRecord{
			URL:      line,
			Priority: leaguedoc.DefaultPriority,
		})
	}
	return records, scanner.Err()
}

// SaveDocuments writes crawled documents as JSON, atomically.
func SaveDocuments(path string, docs []*leaguedoc.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// LoadDocuments reads documents written by SaveDocuments.
func LoadDocuments(path string) ([]*leaguedoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []*leaguedoc.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse documents file: %w", err)
	}
	return docs, nil
}

// DumpText renders documents as one readable plain-text file, useful
// for eyeballing what a crawl actually captured.
func DumpText(path string, docs []*leaguedoc.Document) error {
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "DOCUMENT %d\n", i+1)
		fmt.Fprintf(&b, "SOURCE: %s\n", doc.SourceURL)
		fmt.Fprintf(&b, "TOKENS: %d\n\n", doc.Tokens)
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
		b.WriteString(strings.Repeat("=", 70))
		b.WriteString("\n\n")
	}
	return writeAtomic(path, []byte(b.String()))
}

// writeAtomic writes data to a temporary file in the target directory
// and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
