// Package auth holds the caller identity and the role gate that protects
// mutating catalog operations.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"
)

// Role labels known to the catalog.
const (
	RoleAdmin     = "admin"
	RoleSuperUser = "super-user"
	RoleUser      = "user"
)

var (
	// ErrMissingIdentity is returned when a gated operation has no caller.
	ErrMissingIdentity = errors.New("user not found in request")
	// ErrInsufficientRole matches every *InsufficientRoleError.
	ErrInsufficientRole = errors.New("insufficient role")
)

// InsufficientRoleError reports a caller that holds none of the required roles.
type InsufficientRoleError struct {
	FullName string
	Required []string
}

func (e *InsufficientRoleError) Error() string {
	return fmt.Sprintf("user %s needs a valid role: [%s]", e.FullName, strings.Join(e.Required, ", "))
}

// Is lets errors.Is match ErrInsufficientRole.
func (e *InsufficientRoleError) Is(target error) bool {
	return target == ErrInsufficientRole
}

// Identity is an already authenticated caller.
type Identity struct {
	ID       string
	FullName string
	Roles    []string
}

// IdentityFromUser builds the caller identity for u.
func IdentityFromUser(u *models.User) *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:       u.ID,
		FullName: u.FullName,
		Roles:    append([]string{}, u.Roles...),
	}
}

// Owner returns the user reference recorded as a product's owner.
func (i *Identity) Owner() *models.User {
	return &models.User{ID: i.ID, FullName: i.FullName, Roles: append([]string{}, i.Roles...)}
}

// Authorize allows the call when required is empty or when caller holds at
// least one of the required roles.
func Authorize(required []string, caller *Identity) error {
	if len(required) == 0 {
		return nil
	}
	if caller == nil {
		return ErrMissingIdentity
	}
	for _, role := range caller.Roles {
		for _, want := range required {
			if role == want {
				return nil
			}
		}
	}
	return &InsufficientRoleError{FullName: caller.FullName, Required: append([]string{}, required...)}
}
