package domain

// PolicyDocument is one configuration object as returned by the directory
// service: an opaque, arbitrarily nested JSON object. The engine never
// mutates a document in place; transformations return fresh copies.
type PolicyDocument map[string]any

// volatileFields are stripped before equality, diffing, and creation.
// They legitimately differ between environments even when two documents are
// semantically identical.
var volatileFields = map[string]struct{}{
	"id":                   {},
	"createdDateTime":      {},
	"lastModifiedDateTime": {},
	"modifiedDateTime":     {},
	"version":              {},
	"roleScopeTagIds":      {},
	"supportsScopeTags":    {},
	"isAssigned":           {},
	"assignments":          {},
	"@odata.context":       {},
	"settingCount":         {},
	"creationSource":       {},
	"priorityMetaData":     {},
	"deployedAppCount":     {},
}

// VolatileFields returns the field names excluded from comparison and
// stripped before create/patch calls.
func VolatileFields() []string {
	fields := make([]string, 0, len(volatileFields))
	for f := range volatileFields {
		fields = append(fields, f)
	}
	return fields
}

// IsVolatileField reports whether a field is excluded from comparison.
func IsVolatileField(name string) bool {
	_, ok := volatileFields[name]
	return ok
}

// ID returns the identifier assigned by the directory service, or ""
// for documents not yet created there.
func (d PolicyDocument) ID() string {
	if id, ok := d["id"].(string); ok {
		return id
	}
	return ""
}

// DisplayName returns the human-readable key used for reconciliation.
// Settings catalog and administrative template documents carry the name
// under the legacy "name" key.
func (d PolicyDocument) DisplayName() string {
	if name, ok := d["displayName"].(string); ok && name != "" {
		return name
	}
	if name, ok := d["name"].(string); ok {
		return name
	}
	return ""
}

// TypeTag returns the @odata.type discriminator, or "" if absent.
func (d PolicyDocument) TypeTag() string {
	if tag, ok := d["@odata.type"].(string); ok {
		return tag
	}
	return ""
}

// SetDisplayName returns a copy with the display name replaced, writing to
// whichever key the document already uses.
func (d PolicyDocument) SetDisplayName(name string) PolicyDocument {
	out := d.Clone()
	if _, ok := out["displayName"]; ok {
		out["displayName"] = name
		return out
	}
	if _, ok := out["name"]; ok {
		out["name"] = name
		return out
	}
	out["displayName"] = name
	return out
}

// Clean returns a copy with every volatile field removed, ready to be sent
// to a create or patch call so the target system assigns its own identity.
func (d PolicyDocument) Clean() PolicyDocument {
	out := make(PolicyDocument, len(d))
	for k, v := range d {
		if IsVolatileField(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of the document. Nested values are shared;
// the engine treats them as immutable.
func (d PolicyDocument) Clone() PolicyDocument {
	out := make(PolicyDocument, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
