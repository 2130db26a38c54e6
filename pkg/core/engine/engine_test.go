package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"client_intel/pkg/core/chrono"
	"client_intel/pkg/core/llm"
	"client_intel/pkg/core/report"
)

// StubProvider records every call and answers from a script keyed by call
// index.
type StubProvider struct {
	Responses func(call int, payload, systemPrompt string) (string, error)
	Payloads  []string
}

func (p *StubProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	call := len(p.Payloads)
	p.Payloads = append(p.Payloads, prompt)
	return p.Responses(call, prompt, systemPrompt)
}

var refNow = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func sequenceOf(parts ...chrono.Part) []chrono.Section {
	return chrono.Sequence(parts, refNow)
}

const finalJSON = `{"sentimento_score":"9", "resumo_executivo":"ok", "checkpoints_feitos":[], "proximos_passos":["Enviar proposta"]}`

func TestRunEndToEndScenario(t *testing.T) {
	sections := sequenceOf(
		chrono.Part{Title: "14 jan", Text: "Kickoff com o cliente."},
		chrono.Part{Title: "02 fev", Text: "Cliente encantado com a entrega."},
		chrono.Part{Title: "sem data", Text: "Notas gerais do projeto."},
	)

	// Ordering invariant: undated first, then by date.
	wantOrder := []string{"sem data", "14 jan", "02 fev"}
	for i, title := range wantOrder {
		if sections[i].Title != title {
			t.Fatalf("section %d = %q, want %q", i, sections[i].Title, title)
		}
	}

	stub := &StubProvider{
		Responses: func(call int, payload, systemPrompt string) (string, error) {
			if call == 2 { // final section
				return finalJSON, nil
			}
			return fmt.Sprintf("memória após chamada %d", call), nil
		},
	}

	rep, err := NewSummarizer(stub).Run(context.Background(), sections)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rep.SentimentoScore != 9 {
		t.Errorf("score = %d, want 9", rep.SentimentoScore)
	}
	if got := report.StatusForScore(int(rep.SentimentoScore)); got != report.StatusExtremelySatisfied {
		t.Errorf("status = %q, want Extremely Satisfied", got)
	}
	if len(rep.ProximosPassos) != 1 || rep.ProximosPassos[0] != "Enviar proposta" {
		t.Errorf("proximos_passos = %v", rep.ProximosPassos)
	}
	if len(stub.Payloads) != 3 {
		t.Fatalf("expected 3 generation calls, got %d", len(stub.Payloads))
	}
	// The final payload carries the memory from the previous call, not the
	// raw earlier sections.
	if !strings.Contains(stub.Payloads[2], "memória após chamada 1") {
		t.Errorf("final payload should carry forward memory, got %q", stub.Payloads[2])
	}
}

func TestRunFailureIsolation(t *testing.T) {
	sections := sequenceOf(
		chrono.Part{Title: "14 jan", Text: "Primeira reunião."},
		chrono.Part{Title: "02 fev", Text: "Segunda reunião."},
		chrono.Part{Title: "10 mar", Text: "Última reunião."},
	)

	stub := &StubProvider{
		Responses: func(call int, payload, systemPrompt string) (string, error) {
			switch call {
			case 0:
				return "memória da primeira reunião", nil
			case 1:
				return "", errors.New("timeout upstream")
			default:
				return finalJSON, nil
			}
		},
	}

	rep, err := NewSummarizer(stub).Run(context.Background(), sections)
	if err != nil {
		t.Fatalf("a middle-section failure must not abort the run: %v", err)
	}
	// Memory was left unchanged by the failed call: the final payload still
	// carries the first section's summary.
	if !strings.Contains(stub.Payloads[2], "memória da primeira reunião") {
		t.Errorf("memory changed across a failed section: %q", stub.Payloads[2])
	}
	if rep.SentimentoScore != 9 {
		t.Errorf("final report still expected, score = %d", rep.SentimentoScore)
	}
}

func TestRunRetriesWithDegradedContextOnSizeRejection(t *testing.T) {
	sections := sequenceOf(
		chrono.Part{Title: "14 jan", Text: strings.Repeat("reunião longa ", 300)},
	)

	stub := &StubProvider{
		Responses: func(call int, payload, systemPrompt string) (string, error) {
			if call == 0 {
				return "", &llm.PayloadTooLargeError{Cause: errors.New("status=413")}
			}
			return finalJSON, nil
		},
	}

	rep, err := NewSummarizer(stub).Run(context.Background(), sections)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(stub.Payloads) != 2 {
		t.Fatalf("expected one retry, got %d calls", len(stub.Payloads))
	}
	if len(stub.Payloads[1]) > retryPayloadBudget {
		t.Errorf("retry payload not degraded: %d bytes", len(stub.Payloads[1]))
	}
	if rep.SentimentoScore != 9 {
		t.Errorf("score = %d", rep.SentimentoScore)
	}
}

func TestRunFinalFailureDegradesToFallbackReport(t *testing.T) {
	sections := sequenceOf(
		chrono.Part{Title: "14 jan", Text: "Primeira reunião."},
		chrono.Part{Title: "02 fev", Text: "Última reunião."},
	)

	stub := &StubProvider{
		Responses: func(call int, payload, systemPrompt string) (string, error) {
			if call == 0 {
				return "cliente colaborativo, sem riscos", nil
			}
			return "", errors.New("server error")
		},
	}

	rep, err := NewSummarizer(stub).Run(context.Background(), sections)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(rep.ResumoExecutivo, "cliente colaborativo") {
		t.Errorf("fallback report should carry the last memory, got %q", rep.ResumoExecutivo)
	}
	if len(rep.ProximosPassos) != 0 {
		t.Errorf("fallback lists must be empty, got %v", rep.ProximosPassos)
	}
}

func TestRunIdempotent(t *testing.T) {
	build := func() []chrono.Section {
		return sequenceOf(
			chrono.Part{Title: "14 jan", Text: "Primeira reunião."},
			chrono.Part{Title: "02 fev", Text: "Última reunião."},
		)
	}
	script := func(call int, payload, systemPrompt string) (string, error) {
		if call%2 == 1 {
			return finalJSON, nil
		}
		return "memória determinística", nil
	}

	first, err := NewSummarizer(&StubProvider{Responses: script}).Run(context.Background(), build())
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewSummarizer(&StubProvider{Responses: script}).Run(context.Background(), build())
	if err != nil {
		t.Fatal(err)
	}

	if first.ResumoExecutivo != second.ResumoExecutivo ||
		first.SentimentoScore != second.SentimentoScore ||
		len(first.ProximosPassos) != len(second.ProximosPassos) {
		t.Errorf("deterministic inputs produced different reports: %+v vs %+v", first, second)
	}
}

func TestRunEmptySectionList(t *testing.T) {
	stub := &StubProvider{Responses: func(int, string, string) (string, error) { return "", nil }}
	if _, err := NewSummarizer(stub).Run(context.Background(), nil); !errors.Is(err, ErrNoSections) {
		t.Errorf("expected ErrNoSections, got %v", err)
	}
}

func TestRunningMemoryClip(t *testing.T) {
	m := NewRunningMemory()
	if m.String() != noHistorySentinel {
		t.Errorf("fresh memory = %q", m.String())
	}
	m.Replace(strings.Repeat("ção", 500))
	clipped := m.Clip(100)
	if len(clipped) > 100 {
		t.Errorf("clip returned %d bytes", len(clipped))
	}
	if !strings.HasPrefix(clipped, "ção") {
		t.Error("clip corrupted rune boundary")
	}
}
