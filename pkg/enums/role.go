package enums

import "fmt"

// Role is the closed set of actor roles issued by the identity provider.
type Role string

const (
	RoleSuperAdmin Role = "superAdmin"
	RoleAdmin      Role = "admin"
	RoleVendor     Role = "vendor"
	RoleCustomer   Role = "customer"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSuperAdmin, RoleAdmin, RoleVendor, RoleCustomer:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleVendor, RoleCustomer:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role carries platform administration rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsVendor reports whether the actor manages shops and products.
func (r Role) IsVendor() bool {
	return r == RoleVendor
}

// IsCustomer reports whether the actor is a buyer.
func (r Role) IsCustomer() bool {
	return r == RoleCustomer
}

// CanManageOrders gates order status updates and order soft deletion.
func (r Role) CanManageOrders() bool {
	return r.IsAdmin()
}

// CanDeleteShop gates shop soft deletion. Vendors may only delete their own
// shop; admins may delete any.
func (r Role) CanDeleteShop(ownsShop bool) bool {
	return r.IsAdmin() || (r.IsVendor() && ownsShop)
}

// CanDeleteProduct mirrors CanDeleteShop for product listings.
func (r Role) CanDeleteProduct(ownsProduct bool) bool {
	return r.IsAdmin() || (r.IsVendor() && ownsProduct)
}
