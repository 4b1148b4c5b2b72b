package domain

// AssignmentScope identifies what an assignment targets.
type AssignmentScope string

const (
	// ScopeGroup targets a specific directory group.
	ScopeGroup AssignmentScope = "group"
	// ScopeExclusionGroup excludes a specific directory group.
	ScopeExclusionGroup AssignmentScope = "exclusionGroup"
	// ScopeUser targets a specific user.
	ScopeUser AssignmentScope = "user"
	// ScopeAllUsers targets every licensed user in the tenant.
	ScopeAllUsers AssignmentScope = "allUsers"
	// ScopeAllDevices targets every managed device in the tenant.
	ScopeAllDevices AssignmentScope = "allDevices"
)

// IsUniversal reports whether the scope needs no identity remapping when
// moving between tenants.
func (s AssignmentScope) IsUniversal() bool {
	return s == ScopeAllUsers || s == ScopeAllDevices
}

// AssignmentTarget is one assignment sub-record on a policy document.
type AssignmentTarget struct {
	// ID is the assignment's own identifier in the directory service.
	ID string
	// Scope identifies the kind of target.
	Scope AssignmentScope
	// TargetID is the group or user identifier; empty for universal scopes.
	TargetID string
	// Intent is the install intent for app-type documents
	// (required/available/uninstall); empty elsewhere.
	Intent string
}

// IdentityMapping translates group and user identifiers between tenants.
// It is immutable for the duration of one import or clone operation.
type IdentityMapping struct {
	// Groups maps source-tenant group IDs to target-tenant group IDs.
	Groups map[string]string `json:"groups"`
	// Users maps source-tenant user IDs to target-tenant user IDs.
	Users map[string]string `json:"users"`
}

// IsEmpty reports whether the mapping carries no entries at all.
func (m IdentityMapping) IsEmpty() bool {
	return len(m.Groups) == 0 && len(m.Users) == 0
}
