package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_MatchesSentinels(t *testing.T) {
	assert.ErrorIs(t, apperrors.NewNotFoundError("scenario missing"), apperrors.ErrNotFound)
	assert.ErrorIs(t, apperrors.NewValidationError("bad code"), apperrors.ErrValidation)
	assert.ErrorIs(t, apperrors.NewConflictError("exists"), apperrors.ErrDuplicate)
	assert.NotErrorIs(t, apperrors.NewNotFoundError("x"), apperrors.ErrValidation)
}

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("loading records: %w", apperrors.NewAppError(500, "failed to query records", cause))

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to query records: connection reset")
}
