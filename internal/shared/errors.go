package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed   = fmt.Errorf("authentication failed")
	ErrTokenExpired = fmt.Errorf("access token expired")

	// Retrieval errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrSourceNotFound  = fmt.Errorf("query source not found")
	ErrMissingColumn   = fmt.Errorf("required column missing")
	ErrUpstreamRequest = fmt.Errorf("upstream request failed")
	ErrPersistFailed   = fmt.Errorf("persist failed")

	// API and service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
