package domain

// Role orders the caller's privilege level. Comparisons rely on the
// declaration order: Anonymous < User < Admin.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is the per-request caller identity resolved from the bearer
// credential. It lives only for the duration of the request.
type Identity struct {
	UserID string
	Role   Role
}

func Anonymous() Identity {
	return Identity{Role: RoleAnonymous}
}

func (i Identity) IsAnonymous() bool {
	return i.Role == RoleAnonymous
}
