package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the requested operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrRateUnavailable indicates that no usable exchange rate exists for a
// currency pair, in either direction. Conversion cannot proceed.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrIncompleteData indicates that required compliance fields were missing
// while building a regulator report payload. Fatal for that report attempt;
// needs manual remediation, not a retry.
var ErrIncompleteData = errors.New("incomplete compliance data")

// ErrTransport indicates a recoverable delivery failure against the regulator
// endpoint (timeout, connection error, non-200 response). The remittance stays
// unreported and is retried by the reconciliation job.
var ErrTransport = errors.New("regulator transport failure")
