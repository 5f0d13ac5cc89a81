package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadpilot_backend/internal/leads/domain"
	"leadpilot_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, name, business_type, email, phone, website, location, status, notes,
	verified, quality_score, ai_score, revenue_estimate, source, auto_integrated, created_at, updated_at`

// Repo implements the leads repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.BusinessType, &lead.Email, &lead.Phone, &lead.Website,
		&lead.Location, &lead.Status, &lead.Notes, &lead.Verified, &lead.QualityScore,
		&lead.AIScore, &lead.RevenueEstimate, &lead.Source, &lead.AutoIntegrated,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

// Create inserts a lead.
func (r *Repo) Create(ctx context.Context, params CreateParams) (domain.Lead, error) {
	query := fmt.Sprintf(`
		INSERT INTO leads (
			name, business_type, email, phone, website, location, status, notes,
			verified, quality_score, ai_score, revenue_estimate, source, auto_integrated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.Name, params.BusinessType, params.Email, params.Phone, params.Website,
		params.Location, params.Status, params.Notes, params.Verified, params.QualityScore,
		params.AIScore, params.RevenueEstimate, params.Source, params.AutoIntegrated,
	))
	if err != nil {
		return domain.Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// Get retrieves a lead by ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// List lists leads with filters and pagination, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]domain.Lead, int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR location ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.BusinessType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("business_type ILIKE $%d", argIdx))
		args = append(args, "%"+params.BusinessType+"%")
		argIdx++
	}
	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.Source != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("source = $%d", argIdx))
		args = append(args, params.Source)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	limitClause := ""
	if params.Limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, params.Limit, params.Offset)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY created_at DESC, id DESC
		%s`, leadColumns, whereClause, limitClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		items = append(items, lead)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", rows.Err())
	}

	return items, total, nil
}

// ListAll returns every lead, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Lead, error) {
	items, _, err := r.List(ctx, ListParams{})
	return items, err
}

// Update applies a partial update and returns the stored lead.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (domain.Lead, error) {
	query := fmt.Sprintf(`
		UPDATE leads
		SET name = COALESCE($2, name),
			business_type = COALESCE($3, business_type),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			website = COALESCE($6, website),
			location = COALESCE($7, location),
			status = COALESCE($8, status),
			notes = COALESCE($9, notes),
			verified = COALESCE($10, verified),
			quality_score = COALESCE($11, quality_score),
			ai_score = COALESCE($12, ai_score),
			revenue_estimate = COALESCE($13, revenue_estimate),
			source = COALESCE($14, source),
			updated_at = now()
		WHERE id = $1
		RETURNING %s`, leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.BusinessType, params.Email, params.Phone,
		params.Website, params.Location, params.Status, params.Notes, params.Verified,
		params.QualityScore, params.AIScore, params.RevenueEstimate, params.Source,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return domain.Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// Delete removes a lead.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// DeleteMany removes the given leads and reports how many existed.
func (r *Repo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete leads: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// UpdateStatusMany sets the status on the given leads and reports how
// many were updated.
func (r *Repo) UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status domain.Status) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = now() WHERE id = ANY($2)`, status, ids)
	if err != nil {
		return 0, fmt.Errorf("update lead statuses: %w", err)
	}
	return int(result.RowsAffected()), nil
}

// CountBySource aggregates lead counts and last-added times per source.
func (r *Repo) CountBySource(ctx context.Context) ([]SourceCount, error) {
	query := `
		SELECT source, COUNT(*), MAX(created_at)
		FROM leads
		GROUP BY source
		ORDER BY COUNT(*) DESC, source ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count leads by source: %w", err)
	}
	defer rows.Close()

	counts := make([]SourceCount, 0)
	for rows.Next() {
		var count SourceCount
		var lastAdded time.Time
		if err := rows.Scan(&count.Source, &count.Count, &lastAdded); err != nil {
			return nil, fmt.Errorf("scan source count: %w", err)
		}
		count.LastAdded = lastAdded.Format(time.RFC3339)
		counts = append(counts, count)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate source counts: %w", rows.Err())
	}

	return counts, nil
}
