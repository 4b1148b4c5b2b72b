package domain

import "errors"

// Sentinel errors shared across the engine. Per-document directory
// failures are recorded in outcomes, never surfaced as errors; only the
// input-error class below aborts an operation.
var (
	// ErrInvalidBackup indicates an import source without a usable
	// policies collection.
	ErrInvalidBackup = errors.New("backup has no policies")

	// ErrEmptySelection indicates a type filter that matched nothing.
	ErrEmptySelection = errors.New("no policies selected")

	// ErrInvalidRule indicates a name-transformation rule that cannot
	// produce a name.
	ErrInvalidRule = errors.New("invalid name transformation rule")

	// ErrUnknownPolicyType indicates an unrecognised policy type string.
	ErrUnknownPolicyType = errors.New("unknown policy type")

	// ErrUnknownImportMode indicates an unrecognised import mode string.
	ErrUnknownImportMode = errors.New("unknown import mode")

	// ErrNotFound indicates a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrAuthRequired indicates missing or unusable credentials.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotConfigured indicates the tool has no tenant configuration yet.
	ErrNotConfigured = errors.New("tenant not configured, run 'policyctl auth set'")
)
