package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/bmo/internal/db"
	"github.com/alexanderramin/bmo/internal/domain"
)

const alertColumns = `id, title, description, severity, status, source, module,
	assigned_to, escalated_to, note, has_impact, impact_financial,
	impact_operational, impact_reputation, created_at, updated_at, resolved_at`

// SQLiteAlertRepo implements AlertRepo using a SQLite database.
type SQLiteAlertRepo struct {
	db db.DBTX
}

func NewSQLiteAlertRepo(conn db.DBTX) *SQLiteAlertRepo {
	return &SQLiteAlertRepo{db: conn}
}

func (r *SQLiteAlertRepo) Upsert(ctx context.Context, a *domain.Alert) error {
	query := `INSERT INTO alerts (` + alertColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			severity = excluded.severity,
			status = excluded.status,
			source = excluded.source,
			module = excluded.module,
			assigned_to = excluded.assigned_to,
			escalated_to = excluded.escalated_to,
			note = excluded.note,
			has_impact = excluded.has_impact,
			impact_financial = excluded.impact_financial,
			impact_operational = excluded.impact_operational,
			impact_reputation = excluded.impact_reputation,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			resolved_at = excluded.resolved_at`
	if _, err := r.db.ExecContext(ctx, query, alertArgs(a)...); err != nil {
		return fmt.Errorf("upserting alert %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteAlertRepo) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id)
	a, err := scanAlert(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("alert %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning alert: %w", err)
	}
	return a, nil
}

func (r *SQLiteAlertRepo) List(ctx context.Context) ([]*domain.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert row: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}
	return alerts, nil
}

func (r *SQLiteAlertRepo) Update(ctx context.Context, a *domain.Alert) error {
	query := `UPDATE alerts SET title = ?, description = ?, severity = ?, status = ?,
		source = ?, module = ?, assigned_to = ?, escalated_to = ?, note = ?,
		has_impact = ?, impact_financial = ?, impact_operational = ?, impact_reputation = ?,
		created_at = ?, updated_at = ?, resolved_at = ?
		WHERE id = ?`
	args := append(alertArgs(a)[1:], a.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating alert %s: %w", a.ID, err)
	}
	return requireAffected(res, "alert "+a.ID)
}

func (r *SQLiteAlertRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting alert %s: %w", id, err)
	}
	return requireAffected(res, "alert "+id)
}

func (r *SQLiteAlertRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM alerts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting alerts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning alert count: %w", err)
		}
		counts[domain.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alert counts: %w", err)
	}
	return counts, nil
}

func alertArgs(a *domain.Alert) []any {
	var (
		hasImpact   bool
		financial   float64
		operational string
		reputation  string
	)
	if a.Impact != nil {
		hasImpact = true
		financial = a.Impact.Financial
		operational = string(a.Impact.Operational)
		reputation = string(a.Impact.Reputation)
	}
	return []any{
		a.ID,
		a.Title,
		a.Description,
		string(a.Severity),
		string(a.Status),
		a.Source,
		a.Module,
		a.AssignedTo,
		a.EscalatedTo,
		a.Note,
		boolToInt(hasImpact),
		financial,
		operational,
		reputation,
		formatTime(a.CreatedAt),
		nullableTimeToString(a.UpdatedAt),
		nullableTimeToString(a.ResolvedAt),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var (
		a                       domain.Alert
		severity, status        string
		hasImpact               int
		financial               float64
		operational, reputation string
		createdAt               string
		updatedAt, resolvedAt   sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &severity, &status, &a.Source, &a.Module,
		&a.AssignedTo, &a.EscalatedTo, &a.Note, &hasImpact, &financial,
		&operational, &reputation, &createdAt, &updatedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Severity = domain.Severity(severity)
	a.Status = domain.Status(status)
	if hasImpact != 0 {
		a.Impact = &domain.Impact{
			Financial:   financial,
			Operational: domain.ImpactLevel(operational),
			Reputation:  domain.ImpactLevel(reputation),
		}
	}
	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at of alert %s: %w", a.ID, err)
	}
	a.UpdatedAt = parseNullableTime(updatedAt)
	a.ResolvedAt = parseNullableTime(resolvedAt)
	return &a, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
