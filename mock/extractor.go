package mock

import "github.com/leaguedoc/leaguedoc"

var _ leaguedoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of leaguedoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*leaguedoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*leaguedoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ leaguedoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of leaguedoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
