package common

import "errors"

// Sentinel errors shared by the REST layer and the gateway. Handlers map
// these to HTTP status codes / error frames instead of inspecting error
// strings.
var (
	// ErrAuth means the credential is missing, malformed, expired or
	// names a user that no longer exists.
	ErrAuth = errors.New("authentication failed")

	// ErrForbidden means the identity is valid but lacks the role or
	// ownership for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation means the request payload failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)

func IsAuth(err error) bool       { return errors.Is(err, ErrAuth) }
func IsForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
