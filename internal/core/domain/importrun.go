package domain

import "time"

// ImportMode is the conflict-resolution strategy for a name collision
// between an imported document and an existing target document.
type ImportMode string

const (
	// ModeAlways creates a new document without any existence check.
	ModeAlways ImportMode = "always"
	// ModeSkip leaves existing documents alone.
	ModeSkip ImportMode = "skip"
	// ModeReplace deletes the existing document, then creates a new one.
	ModeReplace ImportMode = "replace"
	// ModeUpdate patches the existing document in place, preserving its
	// identifier, and replaces its assignments wholesale.
	ModeUpdate ImportMode = "update"
)

// ParseImportMode converts a serialized mode to its enum value.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ModeAlways, ModeSkip, ModeReplace, ModeUpdate:
		return ImportMode(s), nil
	}
	return "", ErrUnknownImportMode
}

// ImportAction is the per-document result of an import or clone.
type ImportAction string

const (
	// ActionImported means the document was created or updated in the target.
	ActionImported ImportAction = "imported"
	// ActionSkipped means the document was deliberately not written.
	ActionSkipped ImportAction = "skipped"
	// ActionFailed means the directory call for this document failed.
	ActionFailed ImportAction = "failed"
)

// ImportOutcome records what happened to one document.
type ImportOutcome struct {
	Name   string
	Type   PolicyType
	Action ImportAction
	// Reason explains a skip ("already exists", ...).
	Reason string
	// Error carries the directory error message for failed documents.
	Error string
}

// ImportRun aggregates one import or clone operation.
type ImportRun struct {
	ID        string
	Mode      ImportMode
	StartedAt time.Time
	EndedAt   time.Time
	Outcomes  []ImportOutcome

	Imported int
	Skipped  int
	Failed   int
}

// Record appends an outcome and bumps the matching counter.
func (r *ImportRun) Record(outcome ImportOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	switch outcome.Action {
	case ActionImported:
		r.Imported++
	case ActionSkipped:
		r.Skipped++
	case ActionFailed:
		r.Failed++
	}
}

// ProgressFunc is invoked after every processed document with the running
// position, the batch total, and a label for the document just handled.
type ProgressFunc func(current, total int, label string)
