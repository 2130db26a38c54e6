package docsource

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// GoogleDocsSource reads documents through the structured Google Docs API.
// Each dated tab becomes one section; documents without tabs yield a single
// section titled after the document.
type GoogleDocsSource struct {
	svc *docs.Service
}

func NewGoogleDocsSource(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleDocsSource, error) {
	allOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := docs.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs client: %w", err)
	}
	return &GoogleDocsSource{svc: svc}, nil
}

func (s *GoogleDocsSource) FetchSections(ctx context.Context, docID string) ([]RawSection, error) {
	doc, err := s.svc.Documents.Get(docID).IncludeTabsContent(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", docID, err)
	}

	var sections []RawSection
	if len(doc.Tabs) > 0 {
		sections = collectTabs(doc.Tabs, sections)
	} else if doc.Body != nil {
		sections = appendIfNonEmpty(sections, doc.Title, FlattenBody(doc.Body.Content))
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("document %s: %w", docID, ErrEmptyDocument)
	}
	return sections, nil
}

// collectTabs walks tabs depth-first; child tabs follow their parent, which
// preserves the document's visual order for undated tie-breaking.
func collectTabs(tabs []*docs.Tab, sections []RawSection) []RawSection {
	for _, tab := range tabs {
		if tab == nil {
			continue
		}
		title := ""
		if tab.TabProperties != nil {
			title = tab.TabProperties.Title
		}
		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			sections = appendIfNonEmpty(sections, title, FlattenBody(tab.DocumentTab.Body.Content))
		}
		if len(tab.ChildTabs) > 0 {
			sections = collectTabs(tab.ChildTabs, sections)
		}
	}
	return sections
}

func appendIfNonEmpty(sections []RawSection, title, text string) []RawSection {
	if strings.TrimSpace(text) == "" {
		return sections
	}
	return append(sections, RawSection{Title: title, Text: text})
}
