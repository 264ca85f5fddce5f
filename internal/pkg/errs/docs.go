// Package errs provides the typed errors shared by the domain, application
// and adapter layers.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrValueIsRequired, ...) returned by Unwrap,
//     so callers can classify errors with errors.Is;
//   - a struct carrying the offending parameter and an optional cause;
//   - a pair of constructors, with and without cause.
//
// The HTTP adapter relies on the sentinels to choose a status code and on
// the structs (via errors.As) to report field-level messages.
package errs
