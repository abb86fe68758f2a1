package access

import (
	"backend/internal/model"

	"github.com/google/uuid"
)

// Owned is implemented by entities that expose an owner for scope checks
type Owned interface {
	OwnerID() uuid.UUID
}

// Identity is the caller resolved for a request: either an authenticated user,
// or the anonymous guest bound to the guest role. Guests have no id and can
// never own anything.
type Identity struct {
	User *model.User // nil for guest
	Role model.Role  // guest role when User is nil
}

// Authenticated builds the identity of a logged-in user. The user's role must
// be preloaded.
func Authenticated(user *model.User) Identity {
	return Identity{User: user, Role: user.Role}
}

// Guest builds the anonymous identity bound to the given guest role
func Guest(role model.Role) Identity {
	return Identity{Role: role}
}

func (id Identity) IsGuest() bool {
	return id.User == nil
}

// IsActive reports whether the caller is a live, non-deleted user
func (id Identity) IsActive() bool {
	return id.User != nil && id.User.IsActive
}

func (id Identity) IsAdmin() bool {
	return id.Role.Name == model.RoleAdmin
}

// Owns reports whether the caller's id equals the target's owner id
func (id Identity) Owns(target Owned) bool {
	if id.User == nil || target == nil {
		return false
	}
	owner := target.OwnerID()
	return owner != uuid.Nil && owner == id.User.ID
}

// UserID returns the caller's id, or uuid.Nil for a guest
func (id Identity) UserID() uuid.UUID {
	if id.User == nil {
		return uuid.Nil
	}
	return id.User.ID
}
