// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// FetchError reports that a document could not be retrieved or was not a
// valid PDF. It wraps the underlying cause.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports a failure of the model provider call: transport
// error, timeout, or a non-success API response.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("model provider call failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError reports that a model reply could not be mapped onto the
// expected structure.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed model reply: %s", e.Reason)
}

// ConfigError reports an invalid or missing configuration value, such as
// an absent API credential.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
