// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionIsInvalidError: For when an aggregate version is malformed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The package also carries the cross-aggregate concurrency sentinels shared by
// every versioned aggregate: ErrVersionConflict for optimistic-concurrency
// rejections, ErrTerminalState for transitions attempted from a final status,
// and ErrInvalidState for transitions the state machine forbids.
package errs
