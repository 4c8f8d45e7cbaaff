package common

// Role classifies an identity as a regular user or a support agent.
// It is resolved exactly once, by the credential verifier, and carried on
// the session/request identity from then on.
type Role int

const (
	RoleUser Role = iota
	RoleSupport
)

func (r Role) String() string {
	if r == RoleSupport {
		return "support"
	}
	return "user"
}

// RoleFromRecord maps the stored role fields onto the closed enum. The
// identity store marks support agents either by role type "support" or by
// role name "Support"; everything else is a regular user.
func RoleFromRecord(roleType, roleName string) Role {
	if roleType == "support" || roleName == "Support" {
		return RoleSupport
	}
	return RoleUser
}

// Identity is the authenticated principal attached to a request or a
// connection session. Immutable for the lifetime of the session.
type Identity struct {
	ID       uint64
	Username string
	Email    string
	Role     Role
}

// IsSupport reports whether the identity holds the support role.
func (id *Identity) IsSupport() bool { return id.Role == RoleSupport }
