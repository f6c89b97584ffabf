// Package dump reads pages from a MediaWiki XML export.
package dump

import (
	"compress/bzip2"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Page is one page of the export with the text of its latest revision.
type Page struct {
	Title     string
	Namespace int
	ID        int64
	Text      string
}

type xmlPage struct {
	Title     string        `xml:"title"`
	Namespace int           `xml:"ns"`
	ID        int64         `xml:"id"`
	Revisions []xmlRevision `xml:"revision"`
}

type xmlRevision struct {
	Text string `xml:"text"`
}

// Reader streams pages out of an export document.
type Reader struct {
	dec   *xml.Decoder
	pages int
}

// NewReader returns a Reader decoding r.
func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	return &Reader{dec: dec}
}

// Next returns the next page, or io.EOF when the document has no more pages.
func (r *Reader) Next() (*Page, error) {
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dump: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}

		var p xmlPage
		if err := r.dec.DecodeElement(&p, &start); err != nil {
			return nil, fmt.Errorf("failed to decode page %d: %w", r.pages+1, err)
		}
		r.pages++

		page := &Page{Title: p.Title, Namespace: p.Namespace, ID: p.ID}
		if n := len(p.Revisions); n > 0 {
			page.Text = p.Revisions[n-1].Text
		}
		return page, nil
	}
}

// Pages returns the number of pages read so far.
func (r *Reader) Pages() int {
	return r.pages
}

// Open opens a dump for reading. "-" reads standard input, and a path
// ending in .bz2 is decompressed on the fly. The caller must close the
// returned reader.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".bz2") {
		return struct {
			io.Reader
			io.Closer
		}{
			Reader: bzip2.NewReader(f),
			Closer: f,
		}, nil
	}

	return f, nil
}
