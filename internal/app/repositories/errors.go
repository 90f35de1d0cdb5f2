package repositories

import (
	"fmt"

	"github.com/yigit/campusportal/internal/pkg/apperrors"
)

// Shared repository errors. Each wraps the matching taxonomy sentinel so
// callers can test either.
var (
	ErrNotFound   = fmt.Errorf("record not found: %w", apperrors.ErrResourceNotFound)
	ErrDuplicate  = fmt.Errorf("duplicate record: %w", apperrors.ErrConflict)
	ErrReferenced = fmt.Errorf("record is referenced by other rows: %w", apperrors.ErrDependentRecordsExist)
	ErrStaleState = fmt.Errorf("record is no longer in the expected state: %w", apperrors.ErrConflict)
	ErrInvalid    = fmt.Errorf("value rejected by a check constraint: %w", apperrors.ErrValidationFailed)
)
