package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorUnavailable  = errors.New("service unavailable")

	// provider configuration errors
	ErrorSuffixRequired    = errors.New("provider suffix required")
	ErrorProviderExists    = errors.New("provider already exists")
	ErrorProviderNotFound  = errors.New("provider not found")
	ErrorProviderReadOnly  = errors.New("provider endpoint is not editable")
	ErrorNotCustomProvider = errors.New("active provider is not custom")
	ErrorInvalidBaseURL    = errors.New("invalid base url")

	// ErrorRiskyBaseURL is a warning, not a hard failure: the same
	// normalized URL must be submitted a second time to be accepted.
	ErrorRiskyBaseURL = errors.New("risky base url, confirm to accept")
)
