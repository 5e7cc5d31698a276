package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrVersionIsInvalid     = errors.New("version is invalid")
	ErrIllegalTransition    = errors.New("illegal transition")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrDuplicateHold        = errors.New("duplicate hold")
	ErrInvalidEscrowState   = errors.New("invalid escrow state")
	ErrConcurrencyConflict  = errors.New("concurrency conflict")
)

// sanitize flattens user-supplied values into a single log-safe line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError indicates a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates a supplied value has an invalid shape or content.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value fell outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping a cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates an aggregate version is invalid or stale.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping a cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// IllegalTransitionError indicates a lifecycle event was attempted from a
// state that does not permit it. The state is left unchanged.
type IllegalTransitionError struct {
	From  string
	Event string
}

// NewIllegalTransitionError creates an IllegalTransitionError naming the
// current state and the attempted event.
func NewIllegalTransitionError(from, event string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, Event: event}
}

func (e *IllegalTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: cannot %s from %s", ErrIllegalTransition, e.Event, e.From))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// InsufficientCapacityError indicates a flight could not accommodate a
// requested weight. The caller may retry against a different flight.
type InsufficientCapacityError struct {
	FlightID    string
	RequestedKg float64
	AvailableKg float64
}

// NewInsufficientCapacityError creates an InsufficientCapacityError for a flight.
func NewInsufficientCapacityError(flightID string, requestedKg, availableKg float64) *InsufficientCapacityError {
	return &InsufficientCapacityError{FlightID: flightID, RequestedKg: requestedKg, AvailableKg: availableKg}
}

func (e *InsufficientCapacityError) Error() string {
	return sanitize(fmt.Sprintf("%s: flight %s, requested %.2f kg, available %.2f kg",
		ErrInsufficientCapacity, e.FlightID, e.RequestedKg, e.AvailableKg))
}

func (e *InsufficientCapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}

// DuplicateHoldError indicates an escrow hold already exists for an order.
type DuplicateHoldError struct {
	OrderID string
}

// NewDuplicateHoldError creates a DuplicateHoldError for an order.
func NewDuplicateHoldError(orderID string) *DuplicateHoldError {
	return &DuplicateHoldError{OrderID: orderID}
}

func (e *DuplicateHoldError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s", ErrDuplicateHold, e.OrderID))
}

func (e *DuplicateHoldError) Unwrap() error {
	return ErrDuplicateHold
}

// InvalidEscrowStateError indicates a ledger operation was attempted on an
// escrow entry whose state does not permit it. Calling settle or release a
// second time fails with this error rather than moving money twice.
type InvalidEscrowStateError struct {
	OrderID   string
	State     string
	Operation string
}

// NewInvalidEscrowStateError creates an InvalidEscrowStateError naming the
// entry state and the attempted operation.
func NewInvalidEscrowStateError(orderID, state, operation string) *InvalidEscrowStateError {
	return &InvalidEscrowStateError{OrderID: orderID, State: state, Operation: operation}
}

func (e *InvalidEscrowStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: cannot %s order %s in state %s",
		ErrInvalidEscrowState, e.Operation, e.OrderID, e.State))
}

func (e *InvalidEscrowStateError) Unwrap() error {
	return ErrInvalidEscrowState
}

// ConcurrencyConflictError indicates an atomic update lost a race with a
// concurrent writer. The whole operation is safe to retry from scratch.
type ConcurrencyConflictError struct {
	Resource string
	ID       string
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for a resource key.
func NewConcurrencyConflictError(resource, id string) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Resource: resource, ID: id}
}

func (e *ConcurrencyConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s %s", ErrConcurrencyConflict, e.Resource, e.ID))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
