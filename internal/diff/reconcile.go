package diff

import (
	"sort"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// Index is a name-keyed lookup over one side of a reconciliation. The
// import and clone engines reuse it as their existence check against a
// live target collection.
type Index struct {
	byKey       map[string]domain.PolicyDocument
	useTypeTag  bool
	nameOfEntry map[string]string
}

// NewIndex builds an index over docs. When useTypeTag is set the lookup
// key includes the @odata.type discriminator, so same-named documents of
// different concrete shapes do not collide. If two documents map to the
// same key, the later one wins; duplicate names are an input-quality
// risk, not an error.
func NewIndex(docs []domain.PolicyDocument, useTypeTag bool) *Index {
	idx := &Index{
		byKey:       make(map[string]domain.PolicyDocument, len(docs)),
		useTypeTag:  useTypeTag,
		nameOfEntry: make(map[string]string, len(docs)),
	}
	for _, doc := range docs {
		name := doc.DisplayName()
		if name == "" {
			continue
		}
		key := idx.key(name, doc.TypeTag())
		idx.byKey[key] = doc
		idx.nameOfEntry[key] = name
	}
	return idx
}

// key builds the lookup key for a name and type tag. Matching is
// case-sensitive and exact.
func (idx *Index) key(name, typeTag string) string {
	if idx.useTypeTag && typeTag != "" {
		return typeTag + "\x00" + name
	}
	return name
}

// Lookup returns the indexed document matching doc's name (and type tag,
// where the index discriminates on it).
func (idx *Index) Lookup(doc domain.PolicyDocument) (domain.PolicyDocument, bool) {
	match, ok := idx.byKey[idx.key(doc.DisplayName(), doc.TypeTag())]
	return match, ok
}

// LookupName returns the indexed document with the given display name,
// ignoring the type discriminator. Used by the clone engine, which checks
// candidate names rather than whole documents.
func (idx *Index) LookupName(name string) (domain.PolicyDocument, bool) {
	for key, doc := range idx.byKey {
		if idx.nameOfEntry[key] == name {
			return doc, true
		}
	}
	return nil, false
}

// Contains reports whether a document with doc's name (and type tag,
// where discriminated) exists in the index.
func (idx *Index) Contains(doc domain.PolicyDocument) bool {
	_, ok := idx.Lookup(doc)
	return ok
}

// Add records a newly created document so later existence checks within
// the same run see it.
func (idx *Index) Add(doc domain.PolicyDocument) {
	name := doc.DisplayName()
	if name == "" {
		return
	}
	key := idx.key(name, doc.TypeTag())
	idx.byKey[key] = doc
	idx.nameOfEntry[key] = name
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.byKey)
}

// Reconcile partitions current against baseline by display name (and, for
// policy types whose identity requires it, by type tag): a name only on
// the current side is added, a name only on the baseline side is removed,
// and names on both sides are diffed property-wise into modified or
// unchanged. Every document lands in exactly one bucket.
func Reconcile(policyType domain.PolicyType, current, baseline []domain.PolicyDocument) *domain.ComparisonResult {
	useTypeTag := policyType.RequiresTypeMatch()
	currentIdx := NewIndex(current, useTypeTag)
	baselineIdx := NewIndex(baseline, useTypeTag)

	result := &domain.ComparisonResult{}

	for _, key := range sortedKeys(currentIdx.byKey) {
		doc := currentIdx.byKey[key]
		base, matched := baselineIdx.byKey[key]
		if !matched {
			result.Added = append(result.Added, doc)
			continue
		}

		changes := Properties(doc, base, domain.IsVolatileField)
		entry := domain.DiffEntry{
			Name:    doc.DisplayName(),
			Type:    policyType,
			Changes: changes,
		}
		if len(changes) == 0 {
			entry.Classification = domain.ClassUnchanged
			result.Unchanged = append(result.Unchanged, entry)
		} else {
			entry.Classification = domain.ClassModified
			result.Modified = append(result.Modified, entry)
		}
	}

	for _, key := range sortedKeys(baselineIdx.byKey) {
		if _, matched := currentIdx.byKey[key]; !matched {
			result.Removed = append(result.Removed, baselineIdx.byKey[key])
		}
	}

	return result
}

func sortedKeys(m map[string]domain.PolicyDocument) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
