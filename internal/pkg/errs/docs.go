// Package errs provides standardized error types for the warehouse backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the core error taxonomy:
//   - ObjectNotFoundError: a requested order, task, unit, or bin is missing
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails validation
//   - ValueIsOutOfRangeError: a numeric value falls outside its legal range
//   - InvalidTransitionError: an illegal state machine move, naming both states
//   - ConflictError: a request contradicts recorded state, rejected before mutation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Callers at the service boundary classify failures with errors.Is against the
// sentinels; queue workers use the classification to decide whether a job is
// retryable (storage-level conflicts) or permanent (not-found, invalid
// transition).
package errs
