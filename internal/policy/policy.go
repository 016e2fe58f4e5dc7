// Package policy decides, per request, whether an identity may perform an
// operation on a resource. The tables are fixed at wiring time; evaluation
// is a pure lookup with no per-request state.
package policy

import "catalog-api-server/internal/domain"

// Operation names one resource action. Read operations are list and
// retrieve; everything else is a write.
type Operation string

const (
	OpList     Operation = "list"
	OpCreate   Operation = "create"
	OpRetrieve Operation = "retrieve"
	OpUpdate   Operation = "update"
	OpDestroy  Operation = "destroy"
)

type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated: the caller presented no valid credential for an
	// operation that requires one. Always reported before DenyForbidden.
	DenyUnauthenticated
	// DenyForbidden: the caller authenticated but lacks the required role.
	DenyForbidden
)

// Table maps each operation a resource exposes to the minimum role allowed
// to perform it. Operations absent from the table are not exposed.
type Table map[Operation]domain.Role

// Authorize evaluates the table for one request. An anonymous caller short
// of the required role is denied as unauthenticated, never forbidden.
func (t Table) Authorize(id domain.Identity, op Operation) Decision {
	required, ok := t[op]
	if !ok {
		required = domain.RoleAdmin
	}

	if id.Role >= required {
		return Allow
	}
	if id.IsAnonymous() {
		return DenyUnauthenticated
	}
	return DenyForbidden
}

// Products: world-readable, admin-writable.
func Products() Table {
	return Table{
		OpList:     domain.RoleAnonymous,
		OpRetrieve: domain.RoleAnonymous,
		OpCreate:   domain.RoleAdmin,
		OpUpdate:   domain.RoleAdmin,
		OpDestroy:  domain.RoleAdmin,
	}
}

// Posts: world-readable, writable by any authenticated caller. There is no
// ownership check; any authenticated identity may modify any post.
func Posts() Table {
	return Table{
		OpList:     domain.RoleAnonymous,
		OpRetrieve: domain.RoleAnonymous,
		OpCreate:   domain.RoleUser,
		OpUpdate:   domain.RoleUser,
		OpDestroy:  domain.RoleUser,
	}
}
