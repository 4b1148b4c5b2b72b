package domain

// Graph target discriminators for assignment sub-documents. Documents and
// backups carry assignments in this wire form; the engine converts them to
// AssignmentTarget records at the boundary.
const (
	wireGroupTarget          = "#microsoft.graph.groupAssignmentTarget"
	wireExclusionGroupTarget = "#microsoft.graph.exclusionGroupAssignmentTarget"
	wireUserTarget           = "#microsoft.graph.userAssignmentTarget"
	wireAllUsersTarget       = "#microsoft.graph.allLicensedUsersAssignmentTarget"
	wireAllDevicesTarget     = "#microsoft.graph.allDevicesAssignmentTarget"
)

// ParseAssignments converts a document's embedded "assignments" value into
// AssignmentTarget records. Unrecognised or malformed entries are dropped.
func ParseAssignments(v any) []AssignmentTarget {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	var out []AssignmentTarget
	for _, entry := range list {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if a, ok := parseAssignment(raw); ok {
			out = append(out, a)
		}
	}
	return out
}

// EmbeddedAssignments returns the assignments carried inline on the
// document, if any.
func (d PolicyDocument) EmbeddedAssignments() []AssignmentTarget {
	return ParseAssignments(d["assignments"])
}

func parseAssignment(raw map[string]any) (AssignmentTarget, bool) {
	a := AssignmentTarget{}
	if id, ok := raw["id"].(string); ok {
		a.ID = id
	}
	if intent, ok := raw["intent"].(string); ok {
		a.Intent = intent
	}

	target, ok := raw["target"].(map[string]any)
	if !ok {
		return a, false
	}

	targetType, _ := target["@odata.type"].(string)
	switch targetType {
	case wireGroupTarget:
		a.Scope = ScopeGroup
	case wireExclusionGroupTarget:
		a.Scope = ScopeExclusionGroup
	case wireUserTarget:
		a.Scope = ScopeUser
	case wireAllUsersTarget:
		a.Scope = ScopeAllUsers
	case wireAllDevicesTarget:
		a.Scope = ScopeAllDevices
	default:
		return a, false
	}

	switch a.Scope {
	case ScopeGroup, ScopeExclusionGroup:
		a.TargetID, _ = target["groupId"].(string)
	case ScopeUser:
		a.TargetID, _ = target["userId"].(string)
	case ScopeAllUsers, ScopeAllDevices:
	}
	return a, true
}

// Wire converts an AssignmentTarget back into the Graph request form.
// The assignment's own identifier is omitted; the target system assigns it.
func (a AssignmentTarget) Wire() map[string]any {
	target := map[string]any{}
	switch a.Scope {
	case ScopeGroup:
		target["@odata.type"] = wireGroupTarget
		target["groupId"] = a.TargetID
	case ScopeExclusionGroup:
		target["@odata.type"] = wireExclusionGroupTarget
		target["groupId"] = a.TargetID
	case ScopeUser:
		target["@odata.type"] = wireUserTarget
		target["userId"] = a.TargetID
	case ScopeAllUsers:
		target["@odata.type"] = wireAllUsersTarget
	case ScopeAllDevices:
		target["@odata.type"] = wireAllDevicesTarget
	}

	wire := map[string]any{"target": target}
	if a.Intent != "" {
		wire["intent"] = a.Intent
	}
	return wire
}
