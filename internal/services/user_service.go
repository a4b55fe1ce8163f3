package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/igr/media-backend/internal/models"
	"github.com/igr/media-backend/internal/repositories"
	"github.com/igr/media-backend/internal/storage"
)

// UserService orchestrates profile reads and updates, relationship
// lifecycle and avatar storage. Authorization is consulted before any
// mutation; a denial aborts the operation.
type UserService struct {
	users    repositories.UserRepository
	friends  repositories.FriendRepository
	readings repositories.PostReadingRepository
	messages repositories.MessageRepository
	posts    repositories.PostRepository
	avatars  *storage.AvatarStore
	security *SecurityService
}

// NewUserService creates a new UserService.
func NewUserService(
	users repositories.UserRepository,
	friends repositories.FriendRepository,
	readings repositories.PostReadingRepository,
	messages repositories.MessageRepository,
	posts repositories.PostRepository,
	avatars *storage.AvatarStore,
	security *SecurityService,
) *UserService {
	return &UserService{
		users:    users,
		friends:  friends,
		readings: readings,
		messages: messages,
		posts:    posts,
		avatars:  avatars,
		security: security,
	}
}

// GetUser resolves the principal's email to its profile.
func (s *UserService) GetUser(p Principal) (*models.User, error) {
	if err := s.security.requireRole(p); err != nil {
		return nil, err
	}
	return s.users.GetUserByEmail(p.Email)
}

// UpdateUser persists profile changes for the authenticated caller. The
// incoming id is overwritten with the caller's own id before anything is
// saved, so a forged id can never move the update onto another row.
func (s *UserService) UpdateUser(req models.UpdateUserRequest, p Principal) (*models.User, error) {
	if err := s.security.requireRole(p); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return nil, err
	}
	req.ID = user.ID
	if err := s.security.requireSelf(req.ID, p); err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := s.users.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the caller's profile and cascades: relationship edges
// where the user appears in either position, read markers, inbox messages,
// authored posts and the avatar file. Dependents are removed before the
// user row; the cascade spans Postgres, Mongo and the filesystem, so a
// failed step must leave the user row in place for the whole operation to
// be retried. An edge can never outlive its user.
func (s *UserService) DeleteUser(ctx context.Context, p Principal) error {
	if err := s.security.requireRole(p); err != nil {
		return err
	}
	user, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return err
	}
	if err := s.security.requireSelf(user.ID, p); err != nil {
		return err
	}

	if err := s.friends.DeleteAllByUser(user.ID); err != nil {
		return err
	}
	if err := s.readings.DeleteAllByUser(user.ID); err != nil {
		return err
	}
	if err := s.messages.DeleteAllByUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.posts.DeleteAllByUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.avatars.Remove(user.ID); err != nil {
		return err
	}
	return s.users.DeleteUser(user.ID)
}

// FindByID returns a profile by numeric id.
func (s *UserService) FindByID(id uint, p Principal) (*models.User, error) {
	if err := s.security.requireRole(p); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(id)
}

// GetByLogin returns a user by login name.
func (s *UserService) GetByLogin(login string) (*models.User, error) {
	return s.users.GetUserByName(login)
}

// SearchUsers finds users matching the query by name or email.
func (s *UserService) SearchUsers(query string) ([]models.User, error) {
	return s.users.SearchUsers(query)
}

// MessageOfFriend appends a text message to the target user's inbox.
func (s *UserService) MessageOfFriend(ctx context.Context, targetUserID uint, text string) error {
	if _, err := s.users.GetUserByID(targetUserID); err != nil {
		return err
	}
	return s.messages.Append(ctx, targetUserID, text)
}

// GoFriend sends the target a friend invitation: a canned inbox message
// plus a new subscription edge from initiator to target. No consent gates
// the edge creation beyond both names resolving.
func (s *UserService) GoFriend(ctx context.Context, initiatorName, targetName string) error {
	initiator, err := s.users.GetUserByName(initiatorName)
	if err != nil {
		return err
	}
	target, err := s.users.GetUserByName(targetName)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("User %s invites you to be friends.", initiatorName)
	if err := s.MessageOfFriend(ctx, target.ID, text); err != nil {
		return err
	}
	return s.friends.Create(&models.Friend{
		User1ID: initiator.ID,
		User2ID: target.ID,
		Status:  models.StatusSubscription,
	})
}

// AddFriend accepts an invitation: the existing subscription edge from the
// user to the target transitions to friend. The transition is a durable
// compare-and-set in the store; a missing edge is NotFound. Accepting an
// edge that already reached friend is idempotent.
func (s *UserService) AddFriend(userID uint, targetName string) error {
	if _, err := s.users.GetUserByID(userID); err != nil {
		return err
	}
	target, err := s.users.GetUserByName(targetName)
	if err != nil {
		return err
	}
	err = s.friends.UpdateStatus(userID, target.ID, models.StatusSubscription, models.StatusFriend)
	if errors.Is(err, repositories.ErrNotFound) {
		// The CAS misses both when no edge exists and when the edge has
		// already transitioned; only the former is a lookup failure.
		edge, findErr := s.friends.Find(userID, target.ID)
		if findErr == nil && edge.Status == models.StatusFriend {
			return nil
		}
		return err
	}
	return err
}

// AddSubscription creates a subscription edge from the caller to the named
// user. Unlike GoFriend no message is sent.
func (s *UserService) AddSubscription(targetName string, p Principal) error {
	caller, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return err
	}
	target, err := s.users.GetUserByName(targetName)
	if err != nil {
		return err
	}
	return s.friends.Create(&models.Friend{
		User1ID: caller.ID,
		User2ID: target.ID,
		Status:  models.StatusSubscription,
	})
}

// DeleteSubscription removes the caller's edge to the named user.
func (s *UserService) DeleteSubscription(targetName string, p Principal) error {
	caller, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return err
	}
	target, err := s.users.GetUserByName(targetName)
	if err != nil {
		return err
	}
	return s.friends.Delete(caller.ID, target.ID)
}

// ListFriends returns every relationship edge the caller participates in.
func (s *UserService) ListFriends(p Principal) ([]models.Friend, error) {
	caller, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return nil, err
	}
	return s.friends.ListByUser(caller.ID)
}

// ListMessages returns the caller's inbox in insertion order.
func (s *UserService) ListMessages(ctx context.Context, p Principal) ([]models.Message, error) {
	caller, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return nil, err
	}
	return s.messages.ListByUser(ctx, caller.ID)
}

// UpdateUserImage replaces the caller's avatar. Any previous file is
// removed and its reference cleared before the new bytes are written with
// create-new-only semantics; on success the profile's avatar reference
// becomes /users/{id}. Write failures propagate to the caller.
func (s *UserService) UpdateUserImage(image []byte, p Principal) (*models.User, error) {
	user, err := s.users.GetUserByEmail(p.Email)
	if err != nil {
		return nil, err
	}

	if user.Image != "" {
		if err := s.avatars.Remove(user.ID); err != nil {
			return nil, err
		}
		user.Image = ""
	}
	if err := s.avatars.Save(user.ID, image); err != nil {
		return nil, err
	}

	user.Image = fmt.Sprintf("/users/%d", user.ID)
	if err := s.users.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPhotoByID returns the raw avatar bytes for a user id. Filesystem
// errors propagate.
func (s *UserService) GetPhotoByID(id uint) ([]byte, error) {
	return s.avatars.Load(id)
}
