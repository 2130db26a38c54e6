package docsource

import (
	"testing"

	"google.golang.org/api/docs/v1"
)

func paragraph(runs ...string) *docs.StructuralElement {
	elements := make([]*docs.ParagraphElement, 0, len(runs))
	for _, r := range runs {
		elements = append(elements, &docs.ParagraphElement{TextRun: &docs.TextRun{Content: r}})
	}
	return &docs.StructuralElement{Paragraph: &docs.Paragraph{Elements: elements}}
}

func TestFlattenBodyParagraphs(t *testing.T) {
	got := FlattenBody([]*docs.StructuralElement{
		paragraph("Cliente pediu ", "ajustes no prazo.\n"),
		paragraph("Equipe alinhada.\n"),
	})
	want := "Cliente pediu ajustes no prazo.\nEquipe alinhada.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFlattenBodyNestedTable(t *testing.T) {
	table := &docs.StructuralElement{Table: &docs.Table{
		TableRows: []*docs.TableRow{
			{TableCells: []*docs.TableCell{
				{Content: []*docs.StructuralElement{paragraph("Tarefa")}},
				{Content: []*docs.StructuralElement{paragraph("Status")}},
			}},
			{TableCells: []*docs.TableCell{
				{Content: []*docs.StructuralElement{paragraph("Proposta")}},
				{Content: []*docs.StructuralElement{paragraph("Enviada")}},
			}},
		},
	}}

	got := FlattenBody([]*docs.StructuralElement{paragraph("Pendências:\n"), table})
	want := "Pendências:\nTarefa | Status\nProposta | Enviada\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFlattenBodyIgnoresNilElements(t *testing.T) {
	got := FlattenBody([]*docs.StructuralElement{nil, paragraph("ok\n"), {}})
	if got != "ok\n" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDocID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://docs.google.com/document/d/abc123XYZ_-/edit#heading=h.1", "abc123XYZ_-"},
		{"https://docs.google.com/document/d/exemplo1", "exemplo1"},
		{"bareDocumentId42", "bareDocumentId42"},
		{"https://example.com/nada", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := extractDocID(tc.in); got != tc.want {
			t.Errorf("extractDocID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
