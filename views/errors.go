package views

import "fmt"

// ValidationError marks a request that is malformed before any query runs:
// a required input is missing or a view kind is unrecognized.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ViewConfigurationError marks a single-value view that received a
// multi-variant country resolution with no usable representative. This is a
// client-visible configuration problem, not a store fault; matching silently
// against one arbitrary variant would undercount.
type ViewConfigurationError struct {
	Country  string
	Variants []string
}

func (e *ViewConfigurationError) Error() string {
	return fmt.Sprintf("country %q resolves to %d variants %v and cannot be used in a single-value view",
		e.Country, len(e.Variants), e.Variants)
}

// StoreFailure wraps an error from the data store. It is never retried here:
// repeated identical queries against a consistent read-only store fail
// identically.
type StoreFailure struct {
	Op  string
	Err error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreFailure) Unwrap() error { return e.Err }
