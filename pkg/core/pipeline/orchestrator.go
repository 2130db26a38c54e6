// Package pipeline wires the intelligence run end to end: name lookup,
// document fetch, chronological sequencing, incremental summarization,
// classification and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"client_intel/pkg/core/agent"
	"client_intel/pkg/core/chrono"
	"client_intel/pkg/core/docsource"
	"client_intel/pkg/core/engine"
	"client_intel/pkg/core/report"
	"client_intel/pkg/core/store"
)

// SummaryEngine abstracts the summarization loop for testing.
type SummaryEngine interface {
	Run(ctx context.Context, sections []chrono.Section) (*report.StructuredReport, error)
}

// Orchestrator manages the per-company intelligence flow:
// lookup -> fetch -> sequence -> summarize -> classify -> render -> persist.
type Orchestrator struct {
	lookup   docsource.Lookup
	source   docsource.Source
	engine   SummaryEngine
	repo     store.CompanyRepository
	renderer *report.Renderer
	now      func() time.Time
}

// NewOrchestrator creates an orchestrator using the generation provider the
// agent manager has configured for the "intel" role.
func NewOrchestrator(lookup docsource.Lookup, source docsource.Source, agents *agent.Manager, repo store.CompanyRepository) *Orchestrator {
	return &Orchestrator{
		lookup:   lookup,
		source:   source,
		engine:   engine.NewSummarizer(agents.GetProvider("intel")),
		repo:     repo,
		renderer: report.NewRenderer(),
		now:      time.Now,
	}
}

// NewOrchestratorWithDeps allows injecting every collaborator (e.g. for
// testing).
func NewOrchestratorWithDeps(lookup docsource.Lookup, source docsource.Source, eng SummaryEngine, repo store.CompanyRepository) *Orchestrator {
	return &Orchestrator{
		lookup:   lookup,
		source:   source,
		engine:   eng,
		repo:     repo,
		renderer: report.NewRenderer(),
		now:      time.Now,
	}
}

// RunIntelligence executes the full pipeline for a single company and
// persists the resulting report on its record.
func (o *Orchestrator) RunIntelligence(ctx context.Context, companyID, companyName string) (*report.StructuredReport, error) {
	fmt.Printf("[PIPELINE] Starting intelligence run for %s...\n", companyName)
	start := o.now()

	docID, err := o.lookup.FindDocumentID(ctx, companyName)
	if err != nil {
		return nil, fmt.Errorf("lookup failed for %q: %w", companyName, err)
	}

	raw, err := o.source.FetchSections(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("fetch failed for document %s: %w", docID, err)
	}

	parts := make([]chrono.Part, 0, len(raw))
	for _, sec := range raw {
		parts = append(parts, chrono.Part{Title: sec.Title, Text: sec.Text})
	}
	sections := chrono.Sequence(parts, o.now())
	fmt.Printf("[PIPELINE] %s: %d sections queued oldest to newest\n", companyName, len(sections))

	rep, err := o.engine.Run(ctx, sections)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	status := report.StatusForScore(int(rep.SentimentoScore))
	if err := o.persist(ctx, companyID, rep, status); err != nil {
		return nil, err
	}

	fmt.Printf("[PIPELINE] Completed %s in %v (score=%d status=%s)\n",
		companyName, o.now().Sub(start), rep.SentimentoScore, status)
	return rep, nil
}

func (o *Orchestrator) persist(ctx context.Context, companyID string, rep *report.StructuredReport, status report.Status) error {
	rendered, err := o.renderer.RenderHTML(rep)
	if err != nil {
		// The report itself is sound; fall back to the plain summary so the
		// run still lands on the dashboard.
		fmt.Printf("[PIPELINE] Warning: render failed, storing plain summary: %v\n", err)
		rendered = rep.ResumoExecutivo
	}

	var history []report.ScoreSample
	if existing, err := o.repo.GetByID(ctx, companyID); err == nil {
		history = existing.ScoreHistory
	} else if !errors.Is(err, store.ErrCompanyNotFound) {
		fmt.Printf("[PIPELINE] Warning: could not load score history: %v\n", err)
	}
	history = o.renderer.AppendHistory(history, int(rep.SentimentoScore), o.now())

	if err := o.repo.UpdateReport(ctx, companyID, rendered, status, int(rep.SentimentoScore), history); err != nil {
		return fmt.Errorf("storage failed: %w", err)
	}
	return nil
}

// RunResult reports the outcome of one company inside a bulk refresh.
type RunResult struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// RunAll refreshes every known company sequentially. Sequential on purpose:
// it bounds concurrent load on the generation service. A failing company is
// reported and never aborts the rest of the run.
func (o *Orchestrator) RunAll(ctx context.Context) ([]RunResult, error) {
	companies, err := o.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	results := make([]RunResult, 0, len(companies))
	for _, c := range companies {
		result := RunResult{CompanyID: c.ID, CompanyName: c.Name, Success: true}
		if _, err := o.RunIntelligence(ctx, c.ID, c.Name); err != nil {
			fmt.Printf("[PIPELINE] Warning: %s failed: %v\n", c.Name, err)
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}
