// One-shot pipeline runner: refreshes one company by name, or every
// registered company with -all. Useful for backfills and debugging a
// single document without the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"client_intel/pkg/core/agent"
	"client_intel/pkg/core/config"
	"client_intel/pkg/core/docsource"
	"client_intel/pkg/core/llm"
	"client_intel/pkg/core/pipeline"
	"client_intel/pkg/core/store"
)

func main() {
	company := flag.String("company", "", "company name to refresh")
	all := flag.Bool("all", false, "refresh every registered company")
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	if *company == "" && !*all {
		fmt.Println("Usage: pipeline -company <name> | pipeline -all")
		os.Exit(1)
	}

	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("[FATAL] Invalid config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	repo := store.NewCompanyRepo(store.GetPool())

	providers := map[string]llm.Provider{}
	if cfg.GeminiAPIKey != "" {
		providers["gemini"] = &llm.GeminiProvider{Model: cfg.GeminiModel, APIKey: cfg.GeminiAPIKey}
	}
	if cfg.HeadOfficeBaseURL != "" {
		providers["headoffice"] = llm.NewHeadOfficeProvider(cfg.HeadOfficeBaseURL, cfg.HeadOfficeAPIKey)
	}
	agentMgr := agent.NewManager(cfg.Agent, providers)

	lookup, err := docsource.NewSheetLookup(ctx, cfg.GoogleAPIKey, cfg.SheetID, cfg.SheetRange)
	if err != nil {
		fmt.Printf("[FATAL] Sheets client init failed: %v\n", err)
		os.Exit(1)
	}

	var source docsource.Source
	if cfg.DocSource == "html" {
		htmlSource := docsource.NewPublishedHTMLSource()
		if cfg.HTMLBaseURL != "" {
			htmlSource.BaseURL = cfg.HTMLBaseURL
		}
		source = htmlSource
	} else {
		source, err = docsource.NewGoogleDocsSource(ctx, cfg.GoogleAPIKey)
		if err != nil {
			fmt.Printf("[FATAL] Docs client init failed: %v\n", err)
			os.Exit(1)
		}
	}

	orch := pipeline.NewOrchestrator(lookup, source, agentMgr, repo)

	if *all {
		results, err := orch.RunAll(ctx)
		if err != nil {
			fmt.Printf("[FATAL] Run failed: %v\n", err)
			os.Exit(1)
		}
		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
				fmt.Printf("  FAILED %s: %s\n", r.CompanyName, r.Error)
			}
		}
		fmt.Printf("Done: %d companies, %d failed\n", len(results), failed)
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	companies, err := repo.List(ctx)
	if err != nil {
		fmt.Printf("[FATAL] Failed to list companies: %v\n", err)
		os.Exit(1)
	}
	for _, c := range companies {
		if c.Name == *company {
			rep, err := orch.RunIntelligence(ctx, c.ID, c.Name)
			if err != nil {
				fmt.Printf("[FATAL] Run failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Score: %d\nSummary: %s\n", rep.SentimentoScore, rep.ResumoExecutivo)
			return
		}
	}
	fmt.Printf("[FATAL] Company %q not registered\n", *company)
	os.Exit(1)
}
