package services

import (
	"testing"

	"github.com/igr/media-backend/internal/models"
)

func TestCheckAuthorRole(t *testing.T) {
	t.Parallel()
	sec := NewSecurityService(models.RoleUser)

	if !sec.CheckAuthorRole(Principal{UserID: 1, Role: models.RoleUser}) {
		t.Error("principal with required role was rejected")
	}
	if sec.CheckAuthorRole(Principal{UserID: 1, Role: "admin"}) {
		t.Error("principal with wrong role was accepted")
	}
	if sec.CheckAuthorRole(Principal{UserID: 1}) {
		t.Error("principal without role was accepted")
	}
}

func TestIsAuthorAuthenticated(t *testing.T) {
	t.Parallel()
	sec := NewSecurityService(models.RoleUser)

	p := Principal{UserID: 7, Role: models.RoleUser}
	if !sec.IsAuthorAuthenticated(7, p) {
		t.Error("self-match was rejected")
	}
	// No admin override: a different owner is always denied.
	if sec.IsAuthorAuthenticated(8, p) {
		t.Error("non-owner was accepted")
	}
}

func TestNewSecurityServiceDefaultRole(t *testing.T) {
	t.Parallel()
	sec := NewSecurityService("")

	if !sec.CheckAuthorRole(Principal{Role: models.RoleUser}) {
		t.Error("default required role is not the user role")
	}
}
