package detection

import "errors"

// Sentinel errors for the failure modes of the detection pipeline. Wrapped
// errors carry context; match with errors.Is.
var (
	// ErrInvalidConfiguration indicates an out-of-range configuration value
	// (confidence, overlap threshold, brightness threshold). Configuration
	// is validated before any image work begins.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrTemplateMissing indicates the template image could not be loaded
	// (absent file or undecodable data).
	ErrTemplateMissing = errors.New("template missing")

	// ErrInvalidImage indicates a zero-sized or malformed screenshot or
	// template, or a template larger than the screenshot it is matched
	// against.
	ErrInvalidImage = errors.New("invalid image")

	// ErrRenderFailure indicates the debug image could not be persisted.
	// This error is recoverable: detection results are still valid and are
	// returned with the failure noted, since detection itself succeeded.
	ErrRenderFailure = errors.New("debug image render failed")
)
