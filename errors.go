package menuval

import "fmt"

func describe(prefix, msg string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, cause)
	}
	return prefix + ": " + msg
}

// ProviderError is a failed translation call (API error, quota, timeout).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // a repeat of the same call may succeed
}

func (e *ProviderError) Error() string { return describe("provider error", e.Message, e.Cause) }
func (e *ProviderError) Unwrap() error { return e.Cause }
func (e *ProviderError) retryable() bool { return e.Retryable }

// ConfigError means the configuration tables could not be read from their source.
type ConfigError struct {
	Source    string // "sheets", "yaml", "csv", ...
	Message   string
	Cause     error
	Retryable bool
}

func (e *ConfigError) Error() string {
	return describe(fmt.Sprintf("config error (%s)", e.Source), e.Message, e.Cause)
}
func (e *ConfigError) Unwrap() error { return e.Cause }
func (e *ConfigError) retryable() bool { return e.Retryable }

// InputError reports a malformed input record. It is returned per row, never panicked.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return describe(fmt.Sprintf("invalid input (%s)", e.Field), e.Message, nil)
}
