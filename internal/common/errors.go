// Package common defines shared constants and sentinel errors used across
// the docqa layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Pipeline errors.
	ErrorExtraction = errors.New("text extraction failed")
	ErrorNoAnswer   = errors.New("no answer found")

	// Fatal conditions: there is no recovery path once the store or the
	// encryption key is gone.
	ErrorStoreUnavailable = errors.New("store unavailable")
	ErrorKeyMissing       = errors.New("encryption key missing or mismatched")
)
