// Package permissions declares the vocabulary of Panther access rights and the
// any-of/all-of requirement specs attached to tools.
//
// A Permission's value is its human-readable display string, matching what the
// Panther console shows. Raw short codes from the API token endpoint are
// translated through a fixed table; unrecognized codes are dropped silently so
// that new server-side permissions never break permission listing.
package permissions

// Permission is a Panther access right that can be required for a tool.
type Permission string

const (
	AlertModify              Permission = "Manage Alerts"
	AlertRead                Permission = "View Alerts"
	DataAnalyticsRead        Permission = "Query Data Lake"
	LogSourceRead            Permission = "View Log Sources"
	MetricsRead              Permission = "Read Panther Metrics"
	OrganizationAPITokenRead Permission = "Read API Token Info"
	PolicyRead               Permission = "View Policies"
	RuleModify               Permission = "Manage Rules"
	RuleRead                 Permission = "View Rules"
	UserRead                 Permission = "View Users"
)

// rawToPermission maps raw API permission codes to display permissions.
var rawToPermission = map[string]Permission{
	"AlertModify":              AlertModify,
	"AlertRead":                AlertRead,
	"DataAnalyticsRead":        DataAnalyticsRead,
	"LogSourceRead":            LogSourceRead,
	"OrganizationAPITokenRead": OrganizationAPITokenRead,
	"PolicyRead":               PolicyRead,
	"RuleModify":               RuleModify,
	"RuleRead":                 RuleRead,
	"SummaryRead":              MetricsRead, // Allows reading data & alert metrics
	"UserRead":                 UserRead,
}

// Convert maps raw permission codes to their display-string enum values.
// Unrecognized codes are skipped, never an error; output order follows input
// order.
func Convert(raw []string) []Permission {
	var result []Permission
	for _, code := range raw {
		if perm, ok := rawToPermission[code]; ok {
			result = append(result, perm)
		}
	}
	return result
}

// Spec is a permission requirement attached to a tool: any_of lists
// permissions where one is sufficient, all_of lists permissions that are all
// required. Values are display strings.
type Spec map[string][]string

// displayStrings normalizes a mix of Permission values and raw display
// strings to display strings, preserving order.
func displayStrings(perms []any) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		switch v := p.(type) {
		case Permission:
			out = append(out, string(v))
		case string:
			out = append(out, v)
		}
	}
	return out
}

// AnyOf builds a spec requiring any one of the given permissions. Arguments
// may be Permission values or raw display strings.
func AnyOf(perms ...any) Spec {
	return Spec{"any_of": displayStrings(perms)}
}

// AllOf builds a spec requiring all of the given permissions. Arguments may
// be Permission values or raw display strings.
func AllOf(perms ...any) Spec {
	return Spec{"all_of": displayStrings(perms)}
}
