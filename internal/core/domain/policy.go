package domain

// PolicyType identifies the kind of configuration object managed through
// Microsoft Graph endpoint management.
type PolicyType string

const (
	// PolicyDeviceConfiguration is a classic device configuration profile.
	PolicyDeviceConfiguration PolicyType = "deviceConfiguration"
	// PolicyCompliance is a device compliance policy.
	PolicyCompliance PolicyType = "deviceCompliancePolicy"
	// PolicySettingsCatalog is a settings catalog configuration policy.
	PolicySettingsCatalog PolicyType = "settingsCatalog"
	// PolicyGroupPolicy is an administrative template (group policy) configuration.
	PolicyGroupPolicy PolicyType = "groupPolicyConfiguration"
	// PolicyScript is a device management (PowerShell) script.
	PolicyScript PolicyType = "deviceManagementScript"
	// PolicyAppProtection is an app protection policy.
	PolicyAppProtection PolicyType = "appProtectionPolicy"
	// PolicyMobileApp is a mobile application with packaged content.
	PolicyMobileApp PolicyType = "mobileApp"
	// PolicyAutopilotProfile is a Windows Autopilot deployment profile.
	PolicyAutopilotProfile PolicyType = "windowsAutopilotProfile"
)

// AllPolicyTypes lists every policy type the engine manages, in the order
// batch operations process them.
func AllPolicyTypes() []PolicyType {
	return []PolicyType{
		PolicyDeviceConfiguration,
		PolicyCompliance,
		PolicySettingsCatalog,
		PolicyGroupPolicy,
		PolicyScript,
		PolicyAppProtection,
		PolicyMobileApp,
		PolicyAutopilotProfile,
	}
}

// String returns the serialized form of the policy type.
func (t PolicyType) String() string {
	return string(t)
}

// Label returns a human-readable name for progress reporting and summaries.
func (t PolicyType) Label() string {
	switch t {
	case PolicyDeviceConfiguration:
		return "Device Configurations"
	case PolicyCompliance:
		return "Compliance Policies"
	case PolicySettingsCatalog:
		return "Settings Catalog"
	case PolicyGroupPolicy:
		return "Administrative Templates"
	case PolicyScript:
		return "Device Management Scripts"
	case PolicyAppProtection:
		return "App Protection Policies"
	case PolicyMobileApp:
		return "Mobile Apps"
	case PolicyAutopilotProfile:
		return "Autopilot Profiles"
	}
	return string(t)
}

// UsesLegacyNameField reports whether documents of this type carry their
// display name under the legacy "name" key instead of "displayName".
func (t PolicyType) UsesLegacyNameField() bool {
	switch t {
	case PolicySettingsCatalog, PolicyGroupPolicy:
		return true
	case PolicyDeviceConfiguration, PolicyCompliance, PolicyScript,
		PolicyAppProtection, PolicyMobileApp, PolicyAutopilotProfile:
		return false
	}
	return false
}

// SupportsAssignments reports whether documents of this type carry
// group/user assignments that can be migrated between tenants.
func (t PolicyType) SupportsAssignments() bool {
	switch t {
	case PolicyDeviceConfiguration, PolicyCompliance, PolicySettingsCatalog,
		PolicyGroupPolicy, PolicyScript, PolicyAppProtection, PolicyMobileApp:
		return true
	case PolicyAutopilotProfile:
		return false
	}
	return false
}

// Cloneable reports whether documents of this type can be duplicated in
// place. Mobile apps bundle packaged content that cannot be recreated from
// the policy document alone.
func (t PolicyType) Cloneable() bool {
	switch t {
	case PolicyMobileApp:
		return false
	case PolicyDeviceConfiguration, PolicyCompliance, PolicySettingsCatalog,
		PolicyGroupPolicy, PolicyScript, PolicyAppProtection, PolicyAutopilotProfile:
		return true
	}
	return false
}

// RequiresTypeMatch reports whether name matching for this policy type must
// also compare the @odata.type discriminator. Device configurations share a
// single collection across many concrete profile shapes, so two unrelated
// profiles can legitimately carry the same display name.
func (t PolicyType) RequiresTypeMatch() bool {
	switch t {
	case PolicyDeviceConfiguration, PolicyCompliance, PolicyMobileApp:
		return true
	case PolicySettingsCatalog, PolicyGroupPolicy, PolicyScript,
		PolicyAppProtection, PolicyAutopilotProfile:
		return false
	}
	return false
}

// ParsePolicyType converts a serialized policy type to its enum value.
// Returns ErrUnknownPolicyType for unrecognised input.
func ParsePolicyType(s string) (PolicyType, error) {
	for _, t := range AllPolicyTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrUnknownPolicyType
}
