package wheel

import (
	"fmt"
	"strings"
)

// Role is the moderation rank of the person spinning the wheel. It decides
// whether bans are available.
type Role int

// The zero Role is unset so that zero Options fall back to Owner.
const (
	roleUnset Role = iota
	Moderator
	Admin
	Manager
	Owner
)

var roleNames = [...]string{
	Moderator: "moderator",
	Admin:     "admin",
	Manager:   "manager",
	Owner:     "owner",
}

var roleLabels = [...]string{
	Moderator: "Moderator",
	Admin:     "Admin",
	Manager:   "Manager",
	Owner:     "Owner",
}

// Roles returns every role in rank order.
func Roles() []Role {
	return []Role{Moderator, Admin, Manager, Owner}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r >= Moderator && r <= Owner
}

// CanBan reports whether the role may impose a permanent ban.
func (r Role) CanBan() bool {
	return r.Valid() && r != Moderator
}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Label is the display name.
func (r Role) Label() string {
	if !r.Valid() {
		return r.String()
	}
	return roleLabels[r]
}

// Next cycles to the following role, wrapping after Owner.
func (r Role) Next() Role {
	if !r.Valid() || r == Owner {
		return Moderator
	}
	return r + 1
}

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	names := make([]string, 0, len(roleNames))
	for _, r := range Roles() {
		if roleNames[r] == s {
			return r, nil
		}
		names = append(names, roleNames[r])
	}
	return roleUnset, fmt.Errorf("unknown role %q (want one of %s)", s, strings.Join(names, ", "))
}
