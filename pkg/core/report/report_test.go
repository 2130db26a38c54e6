package report

import (
	"strings"
	"testing"
	"time"
)

func TestParseWellFormedResponse(t *testing.T) {
	raw := `Segue o relatório solicitado:
{"resumo_executivo":"Cliente avançando bem","perfil_cliente":"Diretor objetivo",
"estrategia_relacionamento":"Reuniões quinzenais","checkpoints_feitos":["Migração concluída"],
"proximos_passos":["Enviar proposta"],"riscos_bloqueios":"Nenhum","sentimento_score":8}
Espero que ajude.`

	rep := Parse(raw)
	if rep.ResumoExecutivo != "Cliente avançando bem" {
		t.Errorf("resumo = %q", rep.ResumoExecutivo)
	}
	if rep.SentimentoScore != 8 {
		t.Errorf("score = %d, want 8", rep.SentimentoScore)
	}
	if len(rep.ProximosPassos) != 1 || rep.ProximosPassos[0] != "Enviar proposta" {
		t.Errorf("proximos_passos = %v", rep.ProximosPassos)
	}
}

func TestParseScoreAsString(t *testing.T) {
	rep := Parse(`{"sentimento_score":"9", "resumo_executivo":"ok", "checkpoints_feitos":[], "proximos_passos":["Enviar proposta"]}`)
	if rep.SentimentoScore != 9 {
		t.Errorf("score = %d, want 9", rep.SentimentoScore)
	}
	if StatusForScore(int(rep.SentimentoScore)) != StatusExtremelySatisfied {
		t.Errorf("status = %q", StatusForScore(int(rep.SentimentoScore)))
	}
}

func TestParseClampsScore(t *testing.T) {
	if rep := Parse(`{"resumo_executivo":"ok","sentimento_score":42}`); rep.SentimentoScore != 10 {
		t.Errorf("score = %d, want clamp to 10", rep.SentimentoScore)
	}
	if rep := Parse(`{"resumo_executivo":"ok","sentimento_score":-3}`); rep.SentimentoScore != 0 {
		t.Errorf("score = %d, want clamp to 0", rep.SentimentoScore)
	}
	if rep := Parse(`{"resumo_executivo":"ok","sentimento_score":"alto"}`); rep.SentimentoScore != 0 {
		t.Errorf("score = %d, want 0 for garbage", rep.SentimentoScore)
	}
}

func TestParseMalformedFallsBack(t *testing.T) {
	inputs := []string{
		"O cliente está satisfeito com o andamento, sem JSON nenhum aqui.",
		"resposta com chaves {mas nada de json valido aqui",
	}
	for _, raw := range inputs {
		rep := Parse(raw)
		if rep.ResumoExecutivo == "" {
			t.Errorf("fallback should carry raw text, input %q", raw)
		}
		if rep.CheckpointsFeitos == nil || len(rep.CheckpointsFeitos) != 0 {
			t.Errorf("fallback checkpoints should be empty list, got %v", rep.CheckpointsFeitos)
		}
		if rep.ProximosPassos == nil || len(rep.ProximosPassos) != 0 {
			t.Errorf("fallback proximos_passos should be empty list, got %v", rep.ProximosPassos)
		}
		if rep.SentimentoScore != 0 {
			t.Errorf("fallback score = %d", rep.SentimentoScore)
		}
	}
}

func TestParseFallbackTruncatesLongText(t *testing.T) {
	rep := Parse(strings.Repeat("ã", 2000))
	if len(rep.ResumoExecutivo) > fallbackSummaryLimit {
		t.Errorf("fallback summary not truncated: %d bytes", len(rep.ResumoExecutivo))
	}
	if !strings.HasPrefix(rep.ResumoExecutivo, "ã") {
		t.Error("truncation corrupted the text")
	}
}

func TestStatusForScoreTotality(t *testing.T) {
	want := map[int]Status{
		0: StatusCritical, 1: StatusCritical, 2: StatusCritical,
		3: StatusDissatisfied, 4: StatusDissatisfied,
		5: StatusNeutral, 6: StatusNeutral,
		7: StatusSatisfied, 8: StatusSatisfied,
		9: StatusExtremelySatisfied, 10: StatusExtremelySatisfied,
	}
	for score := 0; score <= 10; score++ {
		if got := StatusForScore(score); got != want[score] {
			t.Errorf("score %d: got %q, want %q", score, got, want[score])
		}
	}
}

func TestRenderHTML(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderHTML(&StructuredReport{
		ResumoExecutivo: "Tudo certo",
		ProximosPassos:  []string{"Enviar proposta", "Agendar follow-up"},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Tudo certo") {
		t.Error("summary missing from rendered card")
	}
	if !strings.Contains(html, "<li>Enviar proposta</li>") {
		t.Errorf("next steps missing from rendered card: %s", html)
	}
}

func TestAppendHistoryCapsWindow(t *testing.T) {
	r := NewRenderer()
	r.HistoryWindow = 3

	var history []ScoreSample
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		history = r.AppendHistory(history, i, base.AddDate(0, 0, i))
	}

	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Score != 2 || history[2].Score != 4 {
		t.Errorf("wrong window retained: %+v", history)
	}
}
