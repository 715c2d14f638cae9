package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker"
	RoleAdmin    Role = "admin"
	// RoleUnknown is a verified uid with no profile in any namespace.
	RoleUnknown Role = ""
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleWorker, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Namespace is the store collection under users/ that holds profiles of this role.
func (r Role) Namespace() string {
	switch r {
	case RoleCustomer:
		return "customers"
	case RoleWorker:
		return "workers"
	case RoleAdmin:
		return "admins"
	default:
		return ""
	}
}

// ResolutionOrder is the precedence applied when a uid has profiles in several
// namespaces: the first match wins.
var ResolutionOrder = []Role{RoleCustomer, RoleWorker, RoleAdmin}
