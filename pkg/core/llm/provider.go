// Package llm holds the text-generation providers the intelligence pipeline
// can talk to. All transports share one practical constraint: a request-size
// ceiling whose rejection must be distinguishable so the engine can retry
// with a degraded context instead of failing the section.
package llm

import (
	"context"
	"errors"
	"strings"
)

// Provider is the interface for all text-generation providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// PayloadTooLargeError marks a transport rejection caused by request size.
// The engine treats it as retryable with a smaller context.
type PayloadTooLargeError struct {
	Cause error
}

func (e *PayloadTooLargeError) Error() string {
	return "PAYLOAD_TOO_LARGE: " + e.Cause.Error()
}

func (e *PayloadTooLargeError) Unwrap() error {
	return e.Cause
}

// IsPayloadTooLarge reports whether err is a request-size rejection from any
// provider transport.
func IsPayloadTooLarge(err error) bool {
	var ptl *PayloadTooLargeError
	return errors.As(err, &ptl)
}

// Messages the upstream APIs use for size rejections. Matched on the error
// text because neither transport exposes a typed error for it.
var sizeRejectionHints = []string{
	"payload size exceeds",
	"request entity too large",
	"exceeds the maximum number of tokens",
	"input token count",
	"context length",
	"too large",
}

func looksLikeSizeRejection(msg string) bool {
	lower := strings.ToLower(msg)
	for _, hint := range sizeRejectionHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
