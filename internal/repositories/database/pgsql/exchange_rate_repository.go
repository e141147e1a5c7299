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
	"github.com/shopspring/decimal"
)

// PgxExchangeRateRepository stores exchange rates in the exchange_rates table.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveExchangeRate inserts a rate, or updates the rate already effective on the same date.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT exchange_rate_id FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective = $3`,
		string(rate.FromCurrencyCode), string(rate.ToCurrencyCode), rate.DateEffective,
	).Scan(&existingID)

	switch {
	case err == nil:
		_, err = tx.Exec(ctx, `
			UPDATE exchange_rates
			SET rate = $1, last_updated_at = $2, last_updated_by = $3
			WHERE exchange_rate_id = $4`,
			rate.Rate, rate.LastUpdatedAt, rate.LastUpdatedBy, existingID,
		)
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO exchange_rates (
				exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
				created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			rate.ExchangeRateID, string(rate.FromCurrencyCode), string(rate.ToCurrencyCode),
			rate.Rate, rate.DateEffective, rate.CreatedAt,
			rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
		)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}

	return r.Commit(ctx, tx)
}

// FindExchangeRate retrieves the most recent rate between two currencies. When only the inverse
// pair is stored its reciprocal is returned; identical codes yield a rate of 1.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, from, to domain.CurrencyCode) (*domain.ExchangeRate, error) {
	if from == to {
		return &domain.ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			DateEffective:    time.Now().Truncate(24 * time.Hour),
		}, nil
	}

	direct, err := r.findRate(ctx, from, to)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	inverse, err := r.findRate(ctx, to, from)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + string(from) + " to " + string(to))
		}
		return nil, err
	}
	if inverse.Rate.IsZero() {
		return nil, apperrors.NewNotFoundError("stored inverse rate for " + string(to) + " to " + string(from) + " is zero")
	}
	inverse.FromCurrencyCode = from
	inverse.ToCurrencyCode = to
	inverse.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
	return inverse, nil
}

func (r *PgxExchangeRateRepository) findRate(ctx context.Context, from, to domain.CurrencyCode) (*domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC
		LIMIT 1;
	`

	var rate domain.ExchangeRate
	var fromCode, toCode string
	err := r.Pool.QueryRow(ctx, query, string(from), string(to)).Scan(
		&rate.ExchangeRateID, &fromCode, &toCode,
		&rate.Rate, &rate.DateEffective, &rate.CreatedAt,
		&rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	rate.FromCurrencyCode = domain.CurrencyCode(fromCode)
	rate.ToCurrencyCode = domain.CurrencyCode(toCode)
	return &rate, nil
}
