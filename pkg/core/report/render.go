package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

// ScoreSample is one entry in a company's sentiment history.
type ScoreSample struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultHistoryWindow caps the persisted score history so storage does not
// grow without bound under scheduled refreshes.
const DefaultHistoryWindow = 30

// Renderer converts a structured report into the persisted dashboard card.
type Renderer struct {
	HistoryWindow int
	md            goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		HistoryWindow: DefaultHistoryWindow,
		md:            goldmark.New(),
	}
}

// RenderHTML produces the HTML card body stored on the company record.
func (r *Renderer) RenderHTML(rep *StructuredReport) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(buildMarkdown(rep)), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// AppendHistory returns history with a new sample appended, keeping only the
// most recent HistoryWindow entries.
func (r *Renderer) AppendHistory(history []ScoreSample, score int, at time.Time) []ScoreSample {
	window := r.HistoryWindow
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	history = append(history, ScoreSample{Score: score, Timestamp: at})
	if len(history) > window {
		history = history[len(history)-window:]
	}
	return history
}

func buildMarkdown(rep *StructuredReport) string {
	var b strings.Builder

	writeSection := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", title, strings.TrimSpace(body))
	}
	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(item))
		}
		b.WriteString("\n")
	}

	writeSection("Resumo Executivo", rep.ResumoExecutivo)
	writeSection("Perfil do Cliente", rep.PerfilCliente)
	writeSection("Estratégia de Relacionamento", rep.EstrategiaRelacionamento)
	writeList("Checkpoints Feitos", rep.CheckpointsFeitos)
	writeList("Próximos Passos", rep.ProximosPassos)
	writeSection("Riscos e Bloqueios", rep.RiscosBloqueios)

	return b.String()
}
