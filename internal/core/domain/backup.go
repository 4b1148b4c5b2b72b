package domain

import "time"

// Backup is the serialized container format for exported policies:
// { exportDate, tenantId, policies: { policyType: [...] } }.
// The engine validates only that Policies is present and non-empty when
// importing; everything inside is opaque.
type Backup struct {
	ExportDate time.Time                      `json:"exportDate"`
	TenantID   string                         `json:"tenantId,omitempty"`
	Policies   map[PolicyType][]PolicyDocument `json:"policies"`
}

// Validate checks the container is usable as an import source.
func (b *Backup) Validate() error {
	if len(b.Policies) == 0 {
		return ErrInvalidBackup
	}
	return nil
}

// Types returns the policy types present in the backup, in canonical order.
func (b *Backup) Types() []PolicyType {
	var types []PolicyType
	for _, t := range AllPolicyTypes() {
		if len(b.Policies[t]) > 0 {
			types = append(types, t)
		}
	}
	return types
}

// Count returns the total number of documents across all policy types.
func (b *Backup) Count() int {
	n := 0
	for _, docs := range b.Policies {
		n += len(docs)
	}
	return n
}
