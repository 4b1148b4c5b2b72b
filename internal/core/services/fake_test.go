package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
)

// fakeDirectory is an in-memory DirectoryClient that records every
// mutating call so tests can assert on call order.
type fakeDirectory struct {
	policies    map[domain.PolicyType][]domain.PolicyDocument
	assignments map[string][]domain.AssignmentTarget
	calls       []string

	listErr   error
	createErr error
	patchErr  error
	deleteErr error
	assignErr error

	nextID int
}

var _ driven.DirectoryClient = (*fakeDirectory)(nil)

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		policies:    make(map[domain.PolicyType][]domain.PolicyDocument),
		assignments: make(map[string][]domain.AssignmentTarget),
	}
}

func (f *fakeDirectory) seed(t domain.PolicyType, docs ...domain.PolicyDocument) {
	f.policies[t] = append(f.policies[t], docs...)
}

func (f *fakeDirectory) List(_ context.Context, t domain.PolicyType) ([]domain.PolicyDocument, error) {
	f.calls = append(f.calls, "list:"+string(t))
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.policies[t], nil
}

func (f *fakeDirectory) Get(_ context.Context, t domain.PolicyType, id string) (domain.PolicyDocument, error) {
	for _, doc := range f.policies[t] {
		if doc.ID() == id {
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDirectory) Create(_ context.Context, t domain.PolicyType, doc domain.PolicyDocument) (domain.PolicyDocument, error) {
	f.calls = append(f.calls, "create:"+doc.DisplayName())
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	created := doc.Clone()
	created["id"] = fmt.Sprintf("gen-%d", f.nextID)
	f.policies[t] = append(f.policies[t], created)
	return created, nil
}

func (f *fakeDirectory) Patch(_ context.Context, t domain.PolicyType, id string, _ domain.PolicyDocument) error {
	f.calls = append(f.calls, "patch:"+id)
	return f.patchErr
}

func (f *fakeDirectory) Delete(_ context.Context, t domain.PolicyType, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	docs := f.policies[t][:0]
	for _, doc := range f.policies[t] {
		if doc.ID() != id {
			docs = append(docs, doc)
		}
	}
	f.policies[t] = docs
	return nil
}

func (f *fakeDirectory) ListAssignments(_ context.Context, _ domain.PolicyType, id string) ([]domain.AssignmentTarget, error) {
	f.calls = append(f.calls, "listAssignments:"+id)
	return f.assignments[id], nil
}

func (f *fakeDirectory) CreateAssignment(_ context.Context, _ domain.PolicyType, id string, a domain.AssignmentTarget) error {
	f.calls = append(f.calls, "assign:"+id+":"+a.TargetID)
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assignments[id] = append(f.assignments[id], a)
	return nil
}

func (f *fakeDirectory) DeleteAssignment(_ context.Context, _ domain.PolicyType, id, assignmentID string) error {
	f.calls = append(f.calls, "unassign:"+id+":"+assignmentID)

	kept := f.assignments[id][:0]
	for _, a := range f.assignments[id] {
		if a.ID != assignmentID {
			kept = append(kept, a)
		}
	}
	f.assignments[id] = kept
	return nil
}

// created returns the document most recently stored under the given type.
func (f *fakeDirectory) created(t domain.PolicyType) domain.PolicyDocument {
	docs := f.policies[t]
	if len(docs) == 0 {
		return nil
	}
	return docs[len(docs)-1]
}
