package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"client_intel/pkg/api/dashboard"
	"client_intel/pkg/core/agent"
	"client_intel/pkg/core/config"
	"client_intel/pkg/core/docsource"
	"client_intel/pkg/core/llm"
	"client_intel/pkg/core/pipeline"
	"client_intel/pkg/core/schedule"
	"client_intel/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
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

	// Generation providers
	providers := map[string]llm.Provider{}
	if cfg.GeminiAPIKey != "" {
		providers["gemini"] = &llm.GeminiProvider{Model: cfg.GeminiModel, APIKey: cfg.GeminiAPIKey}
	}
	if cfg.HeadOfficeBaseURL != "" {
		providers["headoffice"] = llm.NewHeadOfficeProvider(cfg.HeadOfficeBaseURL, cfg.HeadOfficeAPIKey)
	}
	agentMgr := agent.NewManager(cfg.Agent, providers)
	fmt.Printf("[CONFIG] %d providers registered, active: %s\n", len(providers), agentMgr.GetActiveProvider())

	lookup, err := docsource.NewSheetLookup(ctx, cfg.GoogleAPIKey, cfg.SheetID, cfg.SheetRange)
	if err != nil {
		fmt.Printf("[FATAL] Sheets client init failed: %v\n", err)
		os.Exit(1)
	}

	var source docsource.Source
	switch cfg.DocSource {
	case "html":
		htmlSource := docsource.NewPublishedHTMLSource()
		if cfg.HTMLBaseURL != "" {
			htmlSource.BaseURL = cfg.HTMLBaseURL
		}
		source = htmlSource
	default:
		source, err = docsource.NewGoogleDocsSource(ctx, cfg.GoogleAPIKey)
		if err != nil {
			fmt.Printf("[FATAL] Docs client init failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("[CONFIG] Document source: %s\n", cfg.DocSource)

	orch := pipeline.NewOrchestrator(lookup, source, agentMgr, repo)

	// Scheduled refresh
	scheduler := schedule.NewService(cfg.RefreshCron, func(ctx context.Context) (int, error) {
		results, err := orch.RunAll(ctx)
		return len(results), err
	})
	if err := scheduler.Start(ctx); err != nil {
		fmt.Printf("[WARNING] Scheduler disabled: %v\n", err)
	}
	defer scheduler.Stop()

	// Dashboard endpoints
	h := dashboard.NewHandler(repo, orch)
	http.HandleFunc("/api/dashboard-data", h.HandleDashboardData)
	http.HandleFunc("/api/sync-agent", h.HandleSyncAgent)
	http.HandleFunc("/api/companies", h.HandleRegister)
	http.HandleFunc("/api/refresh", h.HandleRefreshCompany)

	fmt.Printf("API server starting on :%s...\n", cfg.Port)
	fmt.Println("  - GET  /api/dashboard-data")
	fmt.Println("  - POST /api/sync-agent")
	fmt.Println("  - POST /api/companies")
	fmt.Println("  - POST /api/refresh?id=<company>")

	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
