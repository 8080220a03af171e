package dot

import "github.com/dotweave/dot/internal/domain"

// Re-exported error types, so callers can type-switch on failures from
// Client methods without importing internal/domain.
type (
	ErrPackageNotFound         = domain.ErrPackageNotFound
	ErrInvalidPackageStructure = domain.ErrInvalidPackageStructure
	ErrInvalidStowDir          = domain.ErrInvalidStowDir
	ErrInvalidTargetDir        = domain.ErrInvalidTargetDir
	ErrInvalidRegexPattern     = domain.ErrInvalidRegexPattern
	ErrInvalidPackageName      = domain.ErrInvalidPackageName
)

// UserFacingError converts an error into a user-friendly message.
func UserFacingError(err error) string {
	return domain.UserFacingError(err)
}
