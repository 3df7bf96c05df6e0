package enums

import "fmt"

// Permission is a single "<action>:<resource>" grant carried in token claims.
type Permission string

const (
	PermissionGetAisle    Permission = "get:aisle"
	PermissionPostAisle   Permission = "post:aisle"
	PermissionPutAisle    Permission = "put:aisle"
	PermissionDeleteAisle Permission = "delete:aisle"

	PermissionGetCustomer  Permission = "get:customer"
	PermissionPostCustomer Permission = "post:customer"
	PermissionPutCustomer  Permission = "put:customer"

	PermissionGetDepartment  Permission = "get:department"
	PermissionPostDepartment Permission = "post:department"
	PermissionPutDepartment  Permission = "put:department"

	PermissionGetEmployee  Permission = "get:employee"
	PermissionPostEmployee Permission = "post:employee"
	PermissionPutEmployee  Permission = "put:employee"

	PermissionGetProduct  Permission = "get:product"
	PermissionPostProduct Permission = "post:product"
	PermissionPutProduct  Permission = "put:product"

	PermissionGetSupplier  Permission = "get:supplier"
	PermissionPostSupplier Permission = "post:supplier"
	PermissionPutSupplier  Permission = "put:supplier"

	PermissionGetPurchase  Permission = "get:purchase"
	PermissionPostPurchase Permission = "post:purchase"
	PermissionPutPurchase  Permission = "put:purchase"
)

var validPermissions = []Permission{
	PermissionGetAisle, PermissionPostAisle, PermissionPutAisle, PermissionDeleteAisle,
	PermissionGetCustomer, PermissionPostCustomer, PermissionPutCustomer,
	PermissionGetDepartment, PermissionPostDepartment, PermissionPutDepartment,
	PermissionGetEmployee, PermissionPostEmployee, PermissionPutEmployee,
	PermissionGetProduct, PermissionPostProduct, PermissionPutProduct,
	PermissionGetSupplier, PermissionPostSupplier, PermissionPutSupplier,
	PermissionGetPurchase, PermissionPostPurchase, PermissionPutPurchase,
}

// Permissions returns every known grant, in declaration order.
func Permissions() []Permission {
	out := make([]Permission, len(validPermissions))
	copy(out, validPermissions)
	return out
}

// String implements fmt.Stringer.
func (p Permission) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Permission.
func (p Permission) IsValid() bool {
	for _, candidate := range validPermissions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePermission converts raw input into a Permission.
func ParsePermission(value string) (Permission, error) {
	for _, candidate := range validPermissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q", value)
}
