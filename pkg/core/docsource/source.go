// Package docsource provides access to the meeting-log documents and to the
// registry spreadsheet mapping company names to document ids. Two document
// implementations exist behind one interface — the structured Google Docs
// API and a published-HTML scrape — selected by configuration.
package docsource

import (
	"context"
	"errors"
)

// RawSection is one titled portion of a source document, before date
// resolution.
type RawSection struct {
	Title string
	Text  string
}

// Source fetches a document's sections.
type Source interface {
	FetchSections(ctx context.Context, docID string) ([]RawSection, error)
}

// Lookup resolves a company name to a document id.
type Lookup interface {
	FindDocumentID(ctx context.Context, companyName string) (string, error)
}

// ErrDocumentNotFound signals a failed name lookup or a missing document.
var ErrDocumentNotFound = errors.New("document not found")

// ErrEmptyDocument signals a document with no readable text content.
var ErrEmptyDocument = errors.New("document has no readable content")
