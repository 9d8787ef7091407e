package auth

import "strings"

// Role is one of the three fixed platform roles. Role names are stored
// upper-case, matching the seeded roles table.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleOrganization Role = "ORGANIZATION"
	RoleVolunteer    Role = "VOLUNTEER"
)

// Roles lists every role seeded at bootstrap.
func Roles() []Role {
	return []Role{RoleAdmin, RoleOrganization, RoleVolunteer}
}

// NormalizeRole maps a raw role name to a known Role. Unknown names map to
// the empty Role so they never satisfy a route requirement.
func NormalizeRole(role string) Role {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleOrganization):
		return RoleOrganization
	case string(RoleVolunteer):
		return RoleVolunteer
	default:
		return ""
	}
}

// HasRole reports whether the caller's role satisfies one of the allowed
// roles for a route.
func HasRole(role string, allowed ...Role) bool {
	if len(allowed) == 0 {
		return false
	}
	current := NormalizeRole(role)
	if current == "" {
		return false
	}
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}
