// Package errs provides the standardized error types used across the engine.
// It implements one consistent pattern for error creation, formatting and
// unwrapping.
//
// The package carries two groups of errors:
//
//   - input errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError.
//     The caller supplied a bad value or referenced something that does not
//     exist; never retried.
//   - lifecycle errors: IllegalTransitionError, InsufficientCapacityError,
//     DuplicateHoldError, InvalidEscrowStateError, ConcurrencyConflictError.
//     The operation was well-formed but lost to the current state of the
//     world. Only ConcurrencyConflictError is safe to retry verbatim;
//     InsufficientCapacityError may be retried against a different flight.
//
// Each error type follows the same shape: a sentinel error variable, a struct
// with the error details, constructor functions (with and without cause where
// a cause makes sense), an Error() method, and an Unwrap() method so that
// errors.Is matches the sentinel. The engine never swallows an error and
// never retries internally; these types carry enough context (ids, states,
// attempted events) for the calling layer to render a message or decide to
// retry.
package errs
