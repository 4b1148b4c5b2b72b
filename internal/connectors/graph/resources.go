package graph

import "github.com/custodia-labs/policyctl/internal/core/domain"

// Graph API base URLs. Endpoint-management resources still live on the
// beta endpoint.
const (
	graphBaseURL     = "https://graph.microsoft.com/v1.0"
	graphBetaBaseURL = "https://graph.microsoft.com/beta"
)

// resourcePath returns the collection path for a policy type, relative to
// the API root. The switch is exhaustive over the closed PolicyType enum.
func resourcePath(t domain.PolicyType) string {
	switch t {
	case domain.PolicyDeviceConfiguration:
		return "/deviceManagement/deviceConfigurations"
	case domain.PolicyCompliance:
		return "/deviceManagement/deviceCompliancePolicies"
	case domain.PolicySettingsCatalog:
		return "/deviceManagement/configurationPolicies"
	case domain.PolicyGroupPolicy:
		return "/deviceManagement/groupPolicyConfigurations"
	case domain.PolicyScript:
		return "/deviceManagement/deviceManagementScripts"
	case domain.PolicyAppProtection:
		return "/deviceAppManagement/managedAppPolicies"
	case domain.PolicyMobileApp:
		return "/deviceAppManagement/mobileApps"
	case domain.PolicyAutopilotProfile:
		return "/deviceManagement/windowsAutopilotDeploymentProfiles"
	}
	return ""
}

// usesBetaEndpoint reports whether a policy type's resource is only
// available on the beta API.
func usesBetaEndpoint(t domain.PolicyType) bool {
	switch t {
	case domain.PolicySettingsCatalog, domain.PolicyGroupPolicy, domain.PolicyScript:
		return true
	case domain.PolicyDeviceConfiguration, domain.PolicyCompliance,
		domain.PolicyAppProtection, domain.PolicyMobileApp, domain.PolicyAutopilotProfile:
		return false
	}
	return false
}
