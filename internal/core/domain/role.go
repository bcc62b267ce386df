package domain

import "errors"

// Role identifies the business role attached to an authenticated session.
// Exactly one role per session; an empty role is a valid state (authenticated
// but not yet provisioned) distinct from having no session at all.
type Role string

const (
	RoleBrand               Role = "BRAND"
	RoleInfluencerSigned    Role = "INFLUENCER_SIGNED"
	RoleInfluencerPartnered Role = "INFLUENCER_PARTNERED"
	RoleStaff               Role = "STAFF"
	RoleAdmin               Role = "ADMIN"
)

// roleRanks is the fixed total order used for hierarchy comparisons.
// PARTNERED ranking below SIGNED is intentional: partnered influencers get a
// narrower surface than signed ones.
var roleRanks = map[Role]int{
	RoleBrand:               1,
	RoleInfluencerPartnered: 2,
	RoleInfluencerSigned:    3,
	RoleStaff:               4,
	RoleAdmin:               5,
}

// ParseRole resolves a raw session claim into a Role. The second return is
// false for an empty or unknown value.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if _, ok := roleRanks[r]; !ok {
		return "", false
	}
	return r, true
}

// Rank returns the hierarchy rank of r, or 0 for an unknown role.
func (r Role) Rank() int {
	return roleRanks[r]
}

// HasRoleAtLeast reports whether role sits at or above required in the
// hierarchy. Unknown roles rank 0 and therefore never satisfy any requirement.
func HasRoleAtLeast(role, required Role) bool {
	if roleRanks[required] == 0 {
		return false
	}
	return roleRanks[role] >= roleRanks[required]
}

// Portal is one of the four role-scoped application areas.
type Portal string

const (
	PortalBrand      Portal = "brand"
	PortalInfluencer Portal = "influencer"
	PortalStaff      Portal = "staff"
	PortalAdmin      Portal = "admin"
)

var portalRoles = map[Portal]map[Role]struct{}{
	PortalBrand:      {RoleBrand: {}},
	PortalInfluencer: {RoleInfluencerSigned: {}, RoleInfluencerPartnered: {}},
	PortalStaff:      {RoleStaff: {}, RoleAdmin: {}},
	PortalAdmin:      {RoleAdmin: {}},
}

// CanAccessPortal reports whether role may enter portal. Any unknown role or
// portal yields false.
func CanAccessPortal(role Role, portal Portal) bool {
	allowed, ok := portalRoles[portal]
	if !ok {
		return false
	}
	_, ok = allowed[role]
	return ok
}

// RedirectPathFor returns the landing path for a role after sign-in.
// Unknown or empty roles land on the sign-in page.
func RedirectPathFor(role Role) string {
	switch role {
	case RoleBrand:
		return "/brand/influencers"
	case RoleInfluencerSigned, RoleInfluencerPartnered:
		return "/influencer/campaigns"
	case RoleStaff:
		return "/staff/roster"
	case RoleAdmin:
		return "/admin"
	default:
		return "/sign-in"
	}
}

// Permission is a key into the static permission table.
type Permission string

const (
	PermCreateUsers          Permission = "CREATE_USERS"
	PermEditAllUsers         Permission = "EDIT_ALL_USERS"
	PermDeleteUsers          Permission = "DELETE_USERS"
	PermViewAllBrands        Permission = "VIEW_ALL_BRANDS"
	PermManageBrands         Permission = "MANAGE_BRANDS"
	PermViewAllInfluencers   Permission = "VIEW_ALL_INFLUENCERS"
	PermManageInfluencers    Permission = "MANAGE_INFLUENCERS"
	PermApprovePayments      Permission = "APPROVE_PAYMENTS"
	PermRunDataSync          Permission = "RUN_DATA_SYNC"
	PermManageSystemSettings Permission = "MANAGE_SYSTEM_SETTINGS"
)

// ErrUnknownPermission signals a lookup with a key outside the closed
// permission set. Callers must treat this as a programming error, not as a
// denied permission.
var ErrUnknownPermission = errors.New("unknown permission key")

var permissionGrants = map[Permission][]Role{
	PermCreateUsers:          {RoleStaff, RoleAdmin},
	PermEditAllUsers:         {RoleAdmin},
	PermDeleteUsers:          {RoleAdmin},
	PermViewAllBrands:        {RoleStaff, RoleAdmin},
	PermManageBrands:         {RoleStaff, RoleAdmin},
	PermViewAllInfluencers:   {RoleStaff, RoleAdmin},
	PermManageInfluencers:    {RoleStaff, RoleAdmin},
	PermApprovePayments:      {RoleAdmin},
	PermRunDataSync:          {RoleAdmin},
	PermManageSystemSettings: {RoleAdmin},
}

// HasPermission reports whether role is on the allow-list for perm.
// An unknown permission key returns ErrUnknownPermission.
func HasPermission(role Role, perm Permission) (bool, error) {
	allowed, ok := permissionGrants[perm]
	if !ok {
		return false, ErrUnknownPermission
	}
	for _, r := range allowed {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}
