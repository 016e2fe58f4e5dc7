package policy

import (
	"testing"

	"catalog-api-server/internal/domain"
)

func TestProductsTable(t *testing.T) {
	anon := domain.Anonymous()
	user := domain.Identity{UserID: "u-1", Role: domain.RoleUser}
	admin := domain.Identity{UserID: "a-1", Role: domain.RoleAdmin}

	table := Products()

	tests := []struct {
		name string
		id   domain.Identity
		op   Operation
		want Decision
	}{
		{"anonymous list", anon, OpList, Allow},
		{"anonymous retrieve", anon, OpRetrieve, Allow},
		{"anonymous create", anon, OpCreate, DenyUnauthenticated},
		{"anonymous update", anon, OpUpdate, DenyUnauthenticated},
		{"anonymous destroy", anon, OpDestroy, DenyUnauthenticated},
		{"user list", user, OpList, Allow},
		{"user create", user, OpCreate, DenyForbidden},
		{"user update", user, OpUpdate, DenyForbidden},
		{"user destroy", user, OpDestroy, DenyForbidden},
		{"admin create", admin, OpCreate, Allow},
		{"admin update", admin, OpUpdate, Allow},
		{"admin destroy", admin, OpDestroy, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Authorize(tt.id, tt.op); got != tt.want {
				t.Errorf("Authorize(%v, %s) = %v, want %v", tt.id.Role, tt.op, got, tt.want)
			}
		})
	}
}

func TestPostsTable(t *testing.T) {
	anon := domain.Anonymous()
	user := domain.Identity{UserID: "u-1", Role: domain.RoleUser}
	admin := domain.Identity{UserID: "a-1", Role: domain.RoleAdmin}

	table := Posts()

	tests := []struct {
		name string
		id   domain.Identity
		op   Operation
		want Decision
	}{
		{"anonymous list", anon, OpList, Allow},
		{"anonymous retrieve", anon, OpRetrieve, Allow},
		{"anonymous create", anon, OpCreate, DenyUnauthenticated},
		{"anonymous destroy", anon, OpDestroy, DenyUnauthenticated},
		{"user create", user, OpCreate, Allow},
		{"user update", user, OpUpdate, Allow},
		{"user destroy", user, OpDestroy, Allow},
		{"admin create", admin, OpCreate, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Authorize(tt.id, tt.op); got != tt.want {
				t.Errorf("Authorize(%v, %s) = %v, want %v", tt.id.Role, tt.op, got, tt.want)
			}
		})
	}
}

func TestUnlistedOperationRequiresAdmin(t *testing.T) {
	table := Table{OpList: domain.RoleAnonymous}

	user := domain.Identity{UserID: "u-1", Role: domain.RoleUser}
	if got := table.Authorize(user, OpDestroy); got != DenyForbidden {
		t.Errorf("Authorize() = %v, want DenyForbidden", got)
	}

	if got := table.Authorize(domain.Anonymous(), OpDestroy); got != DenyUnauthenticated {
		t.Errorf("Authorize() = %v, want DenyUnauthenticated", got)
	}
}
