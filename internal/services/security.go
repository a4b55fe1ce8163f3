package services

import (
	"errors"

	"github.com/igr/media-backend/internal/models"
)

// ErrAccessDenied is returned when the access policy rejects the caller.
// Every mutating operation checks the policy before touching state.
var ErrAccessDenied = errors.New("access denied")

// Principal is the authenticated identity of the current request,
// identified by email.
type Principal struct {
	UserID uint
	Email  string
	Role   string
}

// SecurityService evaluates whether a principal may act on a resource.
type SecurityService struct {
	requiredRole string
}

// NewSecurityService creates a SecurityService requiring the given role for
// profile-management operations.
func NewSecurityService(requiredRole string) *SecurityService {
	if requiredRole == "" {
		requiredRole = models.RoleUser
	}
	return &SecurityService{requiredRole: requiredRole}
}

// CheckAuthorRole reports whether the principal carries the role required
// for profile-management endpoints.
func (s *SecurityService) CheckAuthorRole(p Principal) bool {
	return p.Role == s.requiredRole
}

// IsAuthorAuthenticated reports whether the principal's own id equals the
// target resource owner's id. Self-service only; there is no admin override.
func (s *SecurityService) IsAuthorAuthenticated(targetOwnerID uint, p Principal) bool {
	return p.UserID == targetOwnerID
}

// requireRole short-circuits the caller with ErrAccessDenied when the
// principal lacks the required role.
func (s *SecurityService) requireRole(p Principal) error {
	if !s.CheckAuthorRole(p) {
		return ErrAccessDenied
	}
	return nil
}

// requireSelf short-circuits the caller with ErrAccessDenied when the
// principal does not own the target resource.
func (s *SecurityService) requireSelf(targetOwnerID uint, p Principal) error {
	if !s.IsAuthorAuthenticated(targetOwnerID, p) {
		return ErrAccessDenied
	}
	return nil
}
