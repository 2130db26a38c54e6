package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"client_intel/pkg/core/report"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCompanyNotFound signals an unknown company id.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRecord is the persisted dashboard row for one tracked company.
// Created once at registration; mutated only by the pipeline's report
// renderer at the end of a successful run.
type CompanyRecord struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	DocLink         string               `json:"doc_link"`
	RenderedReport  string               `json:"rendered_report"`
	Status          string               `json:"status"`
	SentimentoScore int                  `json:"sentimento_score"`
	LastUpdated     time.Time            `json:"last_updated"`
	ScoreHistory    []report.ScoreSample `json:"score_history"`
}

// CompanyRepository is the persistence contract the pipeline consumes.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*CompanyRecord, error)
	List(ctx context.Context) ([]*CompanyRecord, error)
	Insert(ctx context.Context, name, docLink string) (*CompanyRecord, error)
	UpdateReport(ctx context.Context, id, renderedReport string, status report.Status, score int, history []report.ScoreSample) error
}

// CompanyRepo is the Postgres implementation, backed by the companies table:
//
//	CREATE TABLE companies (
//	    id               UUID PRIMARY KEY,
//	    name             TEXT NOT NULL,
//	    doc_link         TEXT NOT NULL DEFAULT '',
//	    rendered_report  TEXT NOT NULL DEFAULT '',
//	    status           TEXT NOT NULL DEFAULT '',
//	    sentimento_score INT  NOT NULL DEFAULT 0,
//	    last_updated     TIMESTAMPTZ,
//	    score_history    JSONB NOT NULL DEFAULT '[]'
//	);
type CompanyRepo struct {
	pool *pgxpool.Pool
}

var _ CompanyRepository = (*CompanyRepo)(nil)

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, name, doc_link, rendered_report, status, sentimento_score, last_updated, score_history`

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*CompanyRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	rec, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %s: %w", id, ErrCompanyNotFound)
	}
	return rec, err
}

func (r *CompanyRepo) List(ctx context.Context) ([]*CompanyRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var records []*CompanyRecord
	for rows.Next() {
		rec, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *CompanyRepo) Insert(ctx context.Context, name, docLink string) (*CompanyRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rec := &CompanyRecord{
		ID:           uuid.NewString(),
		Name:         name,
		DocLink:      docLink,
		ScoreHistory: []report.ScoreSample{},
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO companies (id, name, doc_link, score_history) VALUES ($1, $2, $3, '[]')`,
		rec.ID, rec.Name, rec.DocLink,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}
	return rec, nil
}

func (r *CompanyRepo) UpdateReport(ctx context.Context, id, renderedReport string, status report.Status, score int, history []report.ScoreSample) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal score history: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE companies
		SET rendered_report = $2, status = $3, sentimento_score = $4,
		    last_updated = NOW(), score_history = $5
		WHERE id = $1`,
		id, renderedReport, string(status), score, historyJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("company %s: %w", id, ErrCompanyNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*CompanyRecord, error) {
	var rec CompanyRecord
	var lastUpdated *time.Time
	var historyJSON []byte

	if err := row.Scan(&rec.ID, &rec.Name, &rec.DocLink, &rec.RenderedReport,
		&rec.Status, &rec.SentimentoScore, &lastUpdated, &historyJSON); err != nil {
		return nil, err
	}
	if lastUpdated != nil {
		rec.LastUpdated = *lastUpdated
	}
	rec.ScoreHistory = []report.ScoreSample{}
	if len(historyJSON) > 0 {
		json.Unmarshal(historyJSON, &rec.ScoreHistory)
	}
	return &rec, nil
}
