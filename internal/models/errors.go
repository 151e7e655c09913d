package models

import "errors"

// Error taxonomy shared by the resolution components. Network and malformed-response
// errors are recovered at the stage that produced them; only ErrNoMatch reaches callers.
var (
	ErrNetworkFailure    = errors.New("network failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNoMatch           = errors.New("coordinates not found")
	ErrInvalidCandidate  = errors.New("candidate coordinates out of range")
)
