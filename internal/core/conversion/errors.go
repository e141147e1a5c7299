package conversion

import (
	"fmt"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
)

// FailureError is a transport or service error on a batched conversion.
// It matches apperrors.ErrConversion and the underlying cause.
type FailureError struct {
	Target domain.CurrencyCode
	Items  int
	Err    error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("converting %d item(s) to %s: %v", e.Items, e.Target, e.Err)
}

func (e *FailureError) Unwrap() []error {
	return []error{apperrors.ErrConversion, e.Err}
}
