// Package provider implements machine translation backends for the resolver.
package provider

import (
	"strings"

	"github.com/ZaguanLabs/menuval"
)

// Provider is an alias to the main package interface for convenience.
type Provider = menuval.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = menuval.TranslateRequest

// isRetryableError classifies transport failures that carry no structured status.
func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"503",
		"502",
		"500",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// retryableStatus reports whether an HTTP status is worth another attempt.
func retryableStatus(code int) bool {
	return code == 429 || code >= 500
}
