package domain

// Classification places one document in the reconciliation partition.
type Classification string

const (
	// ClassAdded means the document exists now but not in the baseline.
	ClassAdded Classification = "added"
	// ClassRemoved means the document exists in the baseline but not now.
	ClassRemoved Classification = "removed"
	// ClassModified means both sides have the document with differing content.
	ClassModified Classification = "modified"
	// ClassUnchanged means both sides have the document with equal content.
	ClassUnchanged Classification = "unchanged"
)

// ChangeKind classifies one property-level change.
type ChangeKind string

const (
	// ChangeAdded means the current side has a value the baseline lacks.
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved means the baseline has a value the current side lacks.
	ChangeRemoved ChangeKind = "removed"
	// ChangeModified means both sides have differing values.
	ChangeModified ChangeKind = "modified"
)

// PropertyChange records one top-level property difference between a
// document and its baseline counterpart. Before and After are display
// strings; they never feed back into equality.
type PropertyChange struct {
	Property string
	Before   string
	After    string
	Kind     ChangeKind
}

// DiffEntry is the result of comparing one matched pair of documents.
type DiffEntry struct {
	Name           string
	Type           PolicyType
	Classification Classification
	Changes        []PropertyChange
}

// ComparisonResult partitions one policy type's documents.
type ComparisonResult struct {
	Added     []PolicyDocument
	Removed   []PolicyDocument
	Modified  []DiffEntry
	Unchanged []DiffEntry
}

// Counts returns the bucket sizes (added, removed, modified, unchanged).
func (r *ComparisonResult) Counts() (added, removed, modified, unchanged int) {
	return len(r.Added), len(r.Removed), len(r.Modified), len(r.Unchanged)
}

// ComparisonReport aggregates reconciliation results over a whole operation.
type ComparisonReport struct {
	Results map[PolicyType]*ComparisonResult

	// Rollup counts across all policy types.
	TotalAdded     int
	TotalRemoved   int
	TotalModified  int
	TotalUnchanged int
}

// NewComparisonReport returns an empty report.
func NewComparisonReport() *ComparisonReport {
	return &ComparisonReport{
		Results: make(map[PolicyType]*ComparisonResult),
	}
}

// Add records one policy type's result and folds it into the rollup counts.
func (r *ComparisonReport) Add(t PolicyType, result *ComparisonResult) {
	r.Results[t] = result
	added, removed, modified, unchanged := result.Counts()
	r.TotalAdded += added
	r.TotalRemoved += removed
	r.TotalModified += modified
	r.TotalUnchanged += unchanged
}
