package pgsql

import (
	"context"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRecordRepository reads budget records and goals of a scenario.
type PgxRecordRepository struct {
	BaseRepository
}

func newPgxRecordRepository(db *pgxpool.Pool) portsrepo.RecordReader {
	return &PgxRecordRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ListRecords returns the records of one collection ordered by creation, oldest first.
func (r *PgxRecordRepository) ListRecords(ctx context.Context, scenarioID string, collection domain.CollectionDomain) ([]domain.FinancialRecord, error) {
	query := `
		SELECT
			record_id, scenario_id, domain, name, amount, currency_code, frequency,
			created_at, created_by, last_updated_at, last_updated_by
		FROM budget_records
		WHERE scenario_id = $1 AND domain = $2
		ORDER BY created_at, record_id;
	`

	rows, err := r.Pool.Query(ctx, query, scenarioID, string(collection))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget records", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialRecord, error) {
		var rec domain.FinancialRecord
		var d, currency, frequency string
		err := row.Scan(
			&rec.ID, &rec.ScenarioID, &d, &rec.Name, &rec.Amount, &currency, &frequency,
			&rec.CreatedAt, &rec.CreatedBy, &rec.LastUpdatedAt, &rec.LastUpdatedBy,
		)
		rec.Domain = domain.CollectionDomain(d)
		rec.CurrencyCode = domain.CurrencyCode(currency)
		rec.Frequency = domain.Frequency(frequency)
		return rec, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan budget records", err)
	}
	return records, nil
}

// ListGoals returns the goals of a scenario ordered by target date.
func (r *PgxRecordRepository) ListGoals(ctx context.Context, scenarioID string) ([]domain.Goal, error) {
	query := `
		SELECT
			goal_id, scenario_id, name, target_amount, saved_amount, currency_code, start_date, target_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM goals
		WHERE scenario_id = $1
		ORDER BY target_date, goal_id;
	`

	rows, err := r.Pool.Query(ctx, query, scenarioID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query goals", err)
	}

	goals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Goal, error) {
		var g domain.Goal
		var currency string
		err := row.Scan(
			&g.ID, &g.ScenarioID, &g.Name, &g.TargetAmount, &g.SavedAmount, &currency, &g.StartDate, &g.TargetDate,
			&g.CreatedAt, &g.CreatedBy, &g.LastUpdatedAt, &g.LastUpdatedBy,
		)
		g.CurrencyCode = domain.CurrencyCode(currency)
		return g, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan goals", err)
	}
	return goals, nil
}
