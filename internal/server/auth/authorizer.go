// Package auth holds token parsing and the role gate for mutating storage
// operations. Session issuance lives in the CRUD service; this side only
// validates tokens and answers "may this admin do that".
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/moviebase/mediavault/internal/common"
)

// Level is a graduated permission requirement. Every mutating storage
// operation is gated at one of the two levels.
type Level int

const (
	// LevelModerate covers routine content work: creating folders,
	// renaming, issuing upload URLs.
	LevelModerate Level = iota + 1
	// LevelAdminister covers destructive operations (delete).
	LevelAdminister
)

func (l Level) String() string {
	switch l {
	case LevelModerate:
		return "moderate"
	case LevelAdminister:
		return "administer"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// RoleStore resolves the stored role of an admin.
type RoleStore interface {
	GetRole(ctx context.Context, adminID string) (string, error)
}

// roleLevels maps stored role names onto the level they grant.
var roleLevels = map[string]Level{
	"viewer":    0,
	"moderator": LevelModerate,
	"admin":     LevelAdminister,
}

// Authorizer is the single reusable permission predicate, injected once per
// request context instead of re-querying ad hoc at every call site.
type Authorizer struct {
	roles RoleStore
}

func NewAuthorizer(roles RoleStore) *Authorizer {
	return &Authorizer{roles: roles}
}

// Authorize returns nil when the admin's role grants the required level,
// common.ErrorForbidden when it does not, and common.ErrorUnauthorized when
// the admin is unknown.
func (a *Authorizer) Authorize(ctx context.Context, adminID string, required Level) error {
	if adminID == "" {
		return common.ErrorUnauthorized
	}

	role, err := a.roles.GetRole(ctx, adminID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return fmt.Errorf("role lookup: %w", err)
	}

	if roleLevels[role] < required {
		return fmt.Errorf("%w: role %q lacks %s", common.ErrorForbidden, role, required)
	}
	return nil
}
