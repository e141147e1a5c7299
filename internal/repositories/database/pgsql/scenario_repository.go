package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxScenarioRepository implements the scenario repository using pgxpool.
type PgxScenarioRepository struct {
	BaseRepository
}

func newPgxScenarioRepository(db *pgxpool.Pool) portsrepo.ScenarioRepositoryFacade {
	return &PgxScenarioRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindScenarioByID retrieves a scenario by its ID.
func (r *PgxScenarioRepository) FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	query := `
		SELECT scenario_id, name, base_currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM scenarios
		WHERE scenario_id = $1;
	`

	var s domain.Scenario
	var base string
	err := r.Pool.QueryRow(ctx, query, scenarioID).Scan(
		&s.ScenarioID, &s.Name, &base, &s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("scenario with ID " + scenarioID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get scenario by ID", err)
	}
	s.BaseCurrency = domain.CurrencyCode(base)
	return &s, nil
}

// UpdateScenarioBaseCurrency changes the base currency of a scenario.
func (r *PgxScenarioRepository) UpdateScenarioBaseCurrency(ctx context.Context, scenarioID string, code domain.CurrencyCode, userID string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE scenarios
		SET base_currency_code = $1, last_updated_at = $2, last_updated_by = $3
		WHERE scenario_id = $4`,
		string(code), at, userID, scenarioID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update scenario base currency", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("scenario with ID " + scenarioID + " not found")
	}
	return nil
}
