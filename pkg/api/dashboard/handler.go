// Package dashboard exposes the HTTP surface the dashboard frontend
// consumes: company data, manual sync and registration.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"client_intel/pkg/core/pipeline"
	"client_intel/pkg/core/store"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type RegisterRequest struct {
	Name    string `json:"name"`
	DocLink string `json:"doc_link"`
}

type SyncResponse struct {
	Success bool                 `json:"success"`
	Results []pipeline.RunResult `json:"results"`
}

// Handler holds dependencies for dashboard endpoints
type Handler struct {
	Repo store.CompanyRepository
	Orch *pipeline.Orchestrator
}

func NewHandler(repo store.CompanyRepository, orch *pipeline.Orchestrator) *Handler {
	return &Handler{Repo: repo, Orch: orch}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Success: false, Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// HandleDashboardData serves every company row, ready to render.
func (h *Handler) HandleDashboardData(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	records, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}
	if records == nil {
		records = []*store.CompanyRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// HandleSyncAgent refreshes every company and reports per-company outcomes.
// The run is synchronous: the dashboard polls this during onboarding.
func (h *Handler) HandleSyncAgent(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	fmt.Println("[API] Manual sync requested")
	// Detach from the request context so a client disconnect does not
	// abandon a half-finished refresh.
	results, err := h.Orch.RunAll(context.Background())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Sync failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SyncResponse{Success: true, Results: results})
}

// HandleRegister adds a company to the dashboard.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Company name is required", nil)
		return
	}

	rec, err := h.Repo.Insert(r.Context(), req.Name, strings.TrimSpace(req.DocLink))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to register company", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// HandleRefreshCompany refreshes a single company by id.
func (h *Handler) HandleRefreshCompany(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing id parameter", nil)
		return
	}

	rec, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Company not found: %s", id), err)
		return
	}

	rep, err := h.Orch.RunIntelligence(context.Background(), rec.ID, rec.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Refresh failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
