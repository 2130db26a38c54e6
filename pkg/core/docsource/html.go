package docsource

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PublishedHTMLSource scrapes a document's HTML export. It needs no Docs API
// scope, only that the document is shared for reading; headings (h1-h3)
// delimit the sections.
type PublishedHTMLSource struct {
	BaseURL string // defaults to https://docs.google.com
	Client  *http.Client
}

func NewPublishedHTMLSource() *PublishedHTMLSource {
	return &PublishedHTMLSource{
		BaseURL: "https://docs.google.com",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *PublishedHTMLSource) FetchSections(ctx context.Context, docID string) ([]RawSection, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://docs.google.com"
	}
	url := fmt.Sprintf("%s/document/d/%s/export?format=html", base, docID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document export: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("document %s (status %d): %w", docID, res.StatusCode, ErrDocumentNotFound)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document export failed with status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document HTML: %w", err)
	}

	sections := splitByHeadings(doc)
	if len(sections) == 0 {
		return nil, fmt.Errorf("document %s: %w", docID, ErrEmptyDocument)
	}
	return sections, nil
}

// splitByHeadings walks the body's direct children: each h1/h2/h3 starts a
// new section, everything else accumulates into the current one. Content
// before the first heading becomes an untitled (therefore undated) section.
func splitByHeadings(doc *goquery.Document) []RawSection {
	var sections []RawSection
	var current *RawSection

	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			sections = append(sections, *current)
		}
	}

	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3":
			flush()
			current = &RawSection{Title: strings.TrimSpace(sel.Text())}
		default:
			if current == nil {
				current = &RawSection{}
			}
			if text := strings.TrimSpace(sel.Text()); text != "" {
				current.Text += text + "\n"
			}
		}
	})
	flush()

	return sections
}
