package auth

import "strings"

// Operation names a gated catalog operation.
type Operation string

const (
	OpCreateProduct Operation = "create_product"
	OpUpdateProduct Operation = "update_product"
	OpDeleteProduct Operation = "delete_product"
	OpResetCatalog  Operation = "reset_catalog"
)

// Policy declares the required roles of every gated operation. An operation
// missing from the policy, or mapped to an empty list, is open to any caller.
type Policy map[Operation][]string

// DefaultPolicy restricts every catalog mutation to admins.
func DefaultPolicy() Policy {
	return Policy{
		OpCreateProduct: {RoleAdmin},
		OpUpdateProduct: {RoleAdmin},
		OpDeleteProduct: {RoleAdmin},
		OpResetCatalog:  {RoleAdmin},
	}
}

// Authorize checks caller against the roles declared for op.
func (p Policy) Authorize(op Operation, caller *Identity) error {
	return Authorize(p[op], caller)
}

// ParseRoles splits a comma separated role list, dropping blanks.
func ParseRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
