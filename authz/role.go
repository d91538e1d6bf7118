package authz

import "littlelemon-api/models"

// Role is the caller's effective role for one request. It is derived from
// the staff flag plus group membership and passed through explicitly; it is
// never stored on the user row or inside a token.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
	RoleCustomer     Role = "customer"
)

// DeriveRole maps (is_staff, group memberships) to a single effective role.
// Staff wins over everything, Manager over Delivery crew.
func DeriveRole(isStaff bool, groups []string) Role {
	if isStaff {
		return RoleAdmin
	}
	inManager, inCrew := false, false
	for _, g := range groups {
		switch g {
		case models.GroupManager:
			inManager = true
		case models.GroupDeliveryCrew:
			inCrew = true
		}
	}
	if inManager {
		return RoleManager
	}
	if inCrew {
		return RoleDeliveryCrew
	}
	return RoleCustomer
}

// ActsAsCustomer reports whether the caller may use customer-level surfaces
// (cart, checkout, own reservations). The boolean mirrors the historical
// policy exactly: anyone outside the two special groups qualifies, and staff
// users additionally keep customer-level access alongside admin access.
func ActsAsCustomer(isStaff bool, groups []string) bool {
	inSpecial := false
	for _, g := range groups {
		if g == models.GroupManager || g == models.GroupDeliveryCrew {
			inSpecial = true
			break
		}
	}
	return !inSpecial || isStaff
}

// CanWriteCatalog gates create/update/delete on categories and menu items.
func CanWriteCatalog(r Role) bool {
	return r == RoleAdmin
}

// CanSetFeatured gates the item-of-the-day flag on menu items.
func CanSetFeatured(r Role) bool {
	return r == RoleManager || r == RoleAdmin
}

// CanManageManagerRoster gates membership changes to the Manager group.
func CanManageManagerRoster(r Role) bool {
	return r == RoleAdmin
}

// CanManageCrewRoster gates membership changes to the Delivery crew group.
func CanManageCrewRoster(r Role) bool {
	return r == RoleManager || r == RoleAdmin
}

// CanUpdateOrders reports whether the role may touch an order at all after
// creation. Which fields apply is decided by OrderPatchRules.
func CanUpdateOrders(r Role) bool {
	return r == RoleManager || r == RoleDeliveryCrew || r == RoleAdmin
}

// CanAssignDeliveryCrew gates the assign_delivery_crew action.
func CanAssignDeliveryCrew(r Role) bool {
	return r == RoleManager || r == RoleAdmin
}

// SeesAllOrders reports whether the role's order listing is unscoped.
func SeesAllOrders(r Role) bool {
	return r == RoleManager || r == RoleAdmin
}

// SeesAllReservations reports whether the role's reservation listing is
// unscoped. Managers do not get this; only staff do.
func SeesAllReservations(r Role) bool {
	return r == RoleAdmin
}
