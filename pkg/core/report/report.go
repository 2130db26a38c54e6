// Package report defines the structured intelligence report extracted from
// the generation engine's final response, the score-to-status classifier and
// the dashboard rendering of both.
package report

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"client_intel/pkg/core/utils"
)

// StructuredReport is the result of one company analysis run. Field keys are
// the pt-BR names the final-section instruction demands from the model.
type StructuredReport struct {
	ResumoExecutivo          string   `json:"resumo_executivo"`
	PerfilCliente            string   `json:"perfil_cliente"`
	EstrategiaRelacionamento string   `json:"estrategia_relacionamento"`
	CheckpointsFeitos        []string `json:"checkpoints_feitos"`
	ProximosPassos           []string `json:"proximos_passos"`
	RiscosBloqueios          string   `json:"riscos_bloqueios"`
	SentimentoScore          Score    `json:"sentimento_score"`
}

// Score is the sentiment score reported by the model. The model is untrusted
// input: it may send the score as a number, a quoted string, a float or
// garbage. Decoding never fails; out-of-range values clamp to [0,10].
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*s = 0
		return nil
	}
	v := int(math.Round(f))
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	*s = Score(v)
	return nil
}

const fallbackSummaryLimit = 600

// Parse extracts a StructuredReport from the raw final-section response.
// The response usually wraps the JSON object in prose; a balanced-brace scan
// locates it and a repair ladder absorbs near-JSON. If nothing parseable
// remains, Parse falls back to a minimal report carrying the raw text as the
// executive summary — it never returns an error, because a degraded report
// is always preferable to aborting the pipeline.
func Parse(raw string) *StructuredReport {
	if obj, ok := utils.ExtractJSONObject(raw); ok {
		var rep StructuredReport
		if _, err := utils.SmartParse(obj, &rep); err == nil && !rep.empty() {
			rep.normalize()
			return &rep
		}
	}
	return fallback(raw)
}

// empty reports whether parsing produced no recognized content, which
// happens when the repair ladder coerces non-report JSON into the schema.
func (r *StructuredReport) empty() bool {
	return r.ResumoExecutivo == "" &&
		r.PerfilCliente == "" &&
		r.EstrategiaRelacionamento == "" &&
		r.RiscosBloqueios == "" &&
		len(r.CheckpointsFeitos) == 0 &&
		len(r.ProximosPassos) == 0
}

// normalize replaces nil slices so the persisted JSON always carries arrays.
func (r *StructuredReport) normalize() {
	if r.CheckpointsFeitos == nil {
		r.CheckpointsFeitos = []string{}
	}
	if r.ProximosPassos == nil {
		r.ProximosPassos = []string{}
	}
}

func fallback(raw string) *StructuredReport {
	summary := strings.TrimSpace(raw)
	if len(summary) > fallbackSummaryLimit {
		cut := fallbackSummaryLimit
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}
	return &StructuredReport{
		ResumoExecutivo:   summary,
		CheckpointsFeitos: []string{},
		ProximosPassos:    []string{},
	}
}
