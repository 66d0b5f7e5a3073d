package service

import (
	"strings"

	domainauth "github.com/ilibrary/ilibrary-go/internal/domain/auth"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
)

// RoleRouter maps a session's roles to a post-login destination.
type RoleRouter struct{}

// NewRoleRouter builds a RoleRouter.
func NewRoleRouter() *RoleRouter {
	return &RoleRouter{}
}

// Route picks the destination for the given roles. Admin wins over librarian,
// librarian over student. Role comparison ignores case. An empty role list
// and an unrecognized role list are distinct failures so the caller can show
// the right message.
func (r *RoleRouter) Route(roles []string) (domainauth.Destination, error) {
	if len(roles) == 0 {
		return "", apperrors.Validation("no roles assigned to user")
	}

	hasLibrarian := false
	hasStudent := false
	for _, role := range roles {
		switch strings.ToUpper(strings.TrimSpace(role)) {
		case domainauth.RoleAdmin:
			return domainauth.DestinationAdmin, nil
		case domainauth.RoleLibrarian:
			hasLibrarian = true
		case domainauth.RoleStudent, domainauth.RoleUser:
			hasStudent = true
		}
	}

	switch {
	case hasLibrarian:
		return domainauth.DestinationLibrarian, nil
	case hasStudent:
		return domainauth.DestinationHome, nil
	default:
		return "", apperrors.Validation("invalid role configuration")
	}
}
