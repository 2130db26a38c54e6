package docsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleExportHTML = `<html><body>
<p>Notas gerais do projeto.</p>
<h1>14 jan</h1>
<p>Kickoff com o cliente.</p>
<p>Definido o escopo inicial.</p>
<h2>02 fev</h2>
<p>Cliente aprovou a proposta.</p>
</body></html>`

func TestPublishedHTMLSourceFetchSections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/document/d/doc-1/export" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "html" {
			t.Errorf("unexpected format %q", r.URL.Query().Get("format"))
		}
		fmt.Fprint(w, sampleExportHTML)
	}))
	defer srv.Close()

	src := NewPublishedHTMLSource()
	src.BaseURL = srv.URL

	sections, err := src.FetchSections(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("FetchSections failed: %v", err)
	}

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3: %+v", len(sections), sections)
	}
	if sections[0].Title != "" {
		t.Errorf("preamble section should be untitled, got %q", sections[0].Title)
	}
	if sections[1].Title != "14 jan" || sections[2].Title != "02 fev" {
		t.Errorf("heading titles wrong: %q, %q", sections[1].Title, sections[2].Title)
	}
	if sections[1].Text != "Kickoff com o cliente.\nDefinido o escopo inicial.\n" {
		t.Errorf("section text = %q", sections[1].Text)
	}
}

func TestPublishedHTMLSourceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewPublishedHTMLSource()
	src.BaseURL = srv.URL

	_, err := src.FetchSections(context.Background(), "missing")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestPublishedHTMLSourceEmptyDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	}))
	defer srv.Close()

	src := NewPublishedHTMLSource()
	src.BaseURL = srv.URL

	_, err := src.FetchSections(context.Background(), "empty")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}
