// Package errs defines the error vocabulary shared across the fulfillment
// service. Every failure that crosses a layer boundary is expressed through
// one of its categories so callers can classify with errors.Is instead of
// string matching.
//
// Categories:
//   - ValueIsRequiredError: a mandatory value was missing
//   - ValueIsInvalidError: a supplied value failed validation
//   - ValueIsOutOfRangeError: a value fell outside its bounds
//   - ObjectNotFoundError: lookup by identifier found nothing
//   - VersionIsInvalidError: aggregate version conflicts on reconstruction
//
// Each category pairs a sentinel (for example ErrValueIsRequired) with a
// struct carrying the parameter name and an optional cause. Constructors
// exist with and without cause; Unwrap always yields the sentinel. The HTTP
// adapter relies on the sentinels to pick status codes.
package errs
