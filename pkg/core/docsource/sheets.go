package docsource

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// docIDRe pulls the document id out of a Docs URL in the "Links Docs"
// column.
var docIDRe = regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`)

// SheetLookup resolves company names against the registry spreadsheet. The
// match is best-effort: case-insensitive substring in either direction, so
// "Acme" finds the row "Acme Ltda".
type SheetLookup struct {
	svc       *sheets.Service
	sheetID   string
	readRange string
	nameCol   int
	linkCol   int
}

func NewSheetLookup(ctx context.Context, apiKey, sheetID, readRange string, opts ...option.ClientOption) (*SheetLookup, error) {
	allOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := sheets.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}
	if readRange == "" {
		readRange = "A2:B"
	}
	return &SheetLookup{
		svc:       svc,
		sheetID:   sheetID,
		readRange: readRange,
		nameCol:   0,
		linkCol:   1,
	}, nil
}

func (l *SheetLookup) FindDocumentID(ctx context.Context, companyName string) (string, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.sheetID, l.readRange).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to read registry sheet: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(companyName))
	if query == "" {
		return "", fmt.Errorf("company name is empty: %w", ErrDocumentNotFound)
	}

	for _, row := range resp.Values {
		if len(row) <= l.linkCol {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(cellString(row[l.nameCol])))
		if name == "" {
			continue
		}
		if strings.Contains(name, query) || strings.Contains(query, name) {
			if id := extractDocID(cellString(row[l.linkCol])); id != "" {
				return id, nil
			}
		}
	}

	return "", fmt.Errorf("no document for company %q: %w", companyName, ErrDocumentNotFound)
}

func cellString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// extractDocID accepts either a full Docs URL or a bare document id.
func extractDocID(link string) string {
	link = strings.TrimSpace(link)
	if m := docIDRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	if link != "" && !strings.ContainsAny(link, "/ ") {
		return link
	}
	return ""
}
