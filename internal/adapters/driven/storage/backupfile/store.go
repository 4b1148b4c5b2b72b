// Package backupfile reads and writes the backup container format:
// { exportDate, tenantId, policies: { policyType: [...] } }.
package backupfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// Read loads a backup container from a JSON file. Unknown policy types in
// the file are rejected; beyond that the documents are opaque.
func Read(path string) (*domain.Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	// Decode with string keys first so unknown types produce a clear
	// error instead of silently becoming empty enum values.
	var raw struct {
		ExportDate json.RawMessage                    `json:"exportDate"`
		TenantID   string                             `json:"tenantId"`
		Policies   map[string][]domain.PolicyDocument `json:"policies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if len(raw.Policies) == 0 {
		return nil, fmt.Errorf("parse backup %s: %w", path, domain.ErrInvalidBackup)
	}

	backup := &domain.Backup{
		TenantID: raw.TenantID,
		Policies: make(map[domain.PolicyType][]domain.PolicyDocument, len(raw.Policies)),
	}
	if len(raw.ExportDate) > 0 {
		if err := json.Unmarshal(raw.ExportDate, &backup.ExportDate); err != nil {
			return nil, fmt.Errorf("parse backup export date: %w", err)
		}
	}

	for key, docs := range raw.Policies {
		t, err := domain.ParsePolicyType(key)
		if err != nil {
			return nil, fmt.Errorf("parse backup: policy type %q: %w", key, err)
		}
		backup.Policies[t] = docs
	}

	return backup, nil
}

// Write stores a backup container as indented JSON.
func Write(path string, backup *domain.Backup) error {
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
