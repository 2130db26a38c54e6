// Package engine implements the incremental chunked summarization loop: the
// one non-trivial algorithm of this service. Sections are visited oldest to
// newest; each call folds one section into a bounded running memory, and the
// final section's call produces the structured report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"client_intel/pkg/core/chrono"
	"client_intel/pkg/core/llm"
	"client_intel/pkg/core/prompt"
	"client_intel/pkg/core/report"
	"client_intel/pkg/core/sniper"
)

// ErrNoSections is returned when a document yields nothing to analyze.
var ErrNoSections = errors.New("no sections to analyze")

const (
	// carryMemoryBudget bounds the memory prepended to non-final calls.
	carryMemoryBudget = 1200
	// finalMemoryBudget is tighter: the final call must leave room for the
	// last section's text, which is authoritative for the report.
	finalMemoryBudget = 700
	// retryPayloadBudget is the degraded context used after a
	// payload-too-large rejection.
	retryPayloadBudget = 600
)

// Summarizer runs the incremental summarization loop for one document.
type Summarizer struct {
	provider   llm.Provider
	compressor *sniper.Compressor
}

func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{
		provider:   provider,
		compressor: sniper.New(),
	}
}

// Run processes sections in the given (already chronological) order and
// returns the structured report parsed from the final section's response.
//
// Failure policy: a failed or empty generation call leaves the memory
// unchanged and the loop moves on — a missed section degrades quality but
// never aborts the run. Only an empty section list is an error.
func (s *Summarizer) Run(ctx context.Context, sections []chrono.Section) (*report.StructuredReport, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	memory := NewRunningMemory()

	for i, sec := range sections {
		compressed := s.compressor.Compress(sec.RawText)
		last := i == len(sections)-1

		var systemPrompt, payload string
		var options map[string]interface{}
		if last {
			systemPrompt = prompt.MustGetSystemPrompt(prompt.PromptIDs.IntelFinal)
			payload = buildPayload(memory.Clip(finalMemoryBudget), "Última reunião", sec.Title, compressed)
			options = map[string]interface{}{
				"response_format": map[string]interface{}{"type": "json_object"},
			}
		} else {
			systemPrompt = prompt.MustGetSystemPrompt(prompt.PromptIDs.IntelCarry)
			payload = buildPayload(memory.Clip(carryMemoryBudget), "Reunião", sec.Title, compressed)
		}

		response, err := s.provider.GenerateResponse(ctx, payload, systemPrompt, options)
		if err != nil && llm.IsPayloadTooLarge(err) {
			fmt.Printf("[ENGINE] Payload rejected for %q, retrying with degraded context\n", sec.Title)
			response, err = s.provider.GenerateResponse(ctx, clipRunes(payload, retryPayloadBudget), systemPrompt, options)
		}
		if err != nil {
			fmt.Printf("[ENGINE] Warning: section %q skipped: %v\n", sec.Title, err)
			continue
		}
		if strings.TrimSpace(response) == "" {
			fmt.Printf("[ENGINE] Warning: empty response for %q, section skipped\n", sec.Title)
			continue
		}

		memory.Replace(response)
	}

	// After the loop the memory holds the final section's raw response (or,
	// if that call failed, the last carried summary). Parse never errors:
	// malformed output degrades to a minimal report.
	return report.Parse(memory.String()), nil
}

func buildPayload(memory, label, title, compressed string) string {
	var b strings.Builder
	b.WriteString("Entendimento acumulado:\n")
	b.WriteString(memory)
	b.WriteString("\n\n--- ")
	b.WriteString(label)
	if title != "" {
		b.WriteString(" (")
		b.WriteString(title)
		b.WriteString(")")
	}
	b.WriteString(" ---\n")
	b.WriteString(compressed)
	return b.String()
}

func clipRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
