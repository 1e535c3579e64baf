// Package errs provides the error types shared across the order workflow.
//
// Each type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrForbidden, ...) usable with errors.Is
//   - a struct carrying the details
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// Adapters translate sentinels into transport status codes; the domain never
// depends on a transport.
package errs
