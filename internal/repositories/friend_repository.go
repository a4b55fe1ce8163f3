package repositories

import (
	"errors"

	"github.com/igr/media-backend/internal/models"
	"gorm.io/gorm"
)

// FriendRepository persists directed relationship edges between user ids.
// Every operation is keyed by the ordered pair (user1, user2).
type FriendRepository interface {
	Create(edge *models.Friend) error
	Find(user1, user2 uint) (*models.Friend, error)
	UpdateStatus(user1, user2 uint, from, to models.FriendStatus) error
	Delete(user1, user2 uint) error
	DeleteAllByUser(userID uint) error
	ListByUser(userID uint) ([]models.Friend, error)
}

// PostgresFriendRepository implements FriendRepository for PostgreSQL
type PostgresFriendRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRepository creates a new PostgresFriendRepository
func NewPostgresFriendRepository(db *gorm.DB) *PostgresFriendRepository {
	return &PostgresFriendRepository{db: db}
}

// Create inserts a new edge. The composite primary key rejects duplicate
// ordered pairs; that violation surfaces as ErrDuplicateEdge.
func (r *PostgresFriendRepository) Create(edge *models.Friend) error {
	var existing models.Friend
	err := r.db.Where("user1_id = ? AND user2_id = ?", edge.User1ID, edge.User2ID).First(&existing).Error
	if err == nil {
		return ErrDuplicateEdge
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := r.db.Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEdge
		}
		return err
	}
	return nil
}

// Find returns the edge for an ordered pair, or ErrNotFound.
func (r *PostgresFriendRepository) Find(user1, user2 uint) (*models.Friend, error) {
	var edge models.Friend
	if err := r.db.Where("user1_id = ? AND user2_id = ?", user1, user2).First(&edge).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &edge, nil
}

// UpdateStatus transitions an edge from one status to another with a single
// compare-and-set statement, so concurrent transitions on the same pair
// cannot lose updates. A zero row count means no edge was in the expected
// state and maps to ErrNotFound.
func (r *PostgresFriendRepository) UpdateStatus(user1, user2 uint, from, to models.FriendStatus) error {
	res := r.db.Model(&models.Friend{}).
		Where("user1_id = ? AND user2_id = ? AND status = ?", user1, user2, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the edge for an ordered pair.
func (r *PostgresFriendRepository) Delete(user1, user2 uint) error {
	res := r.db.Where("user1_id = ? AND user2_id = ?", user1, user2).Delete(&models.Friend{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByUser removes every edge referencing the user in either
// position. Invoked when a user is deleted so no edge dangles.
func (r *PostgresFriendRepository) DeleteAllByUser(userID uint) error {
	return r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Delete(&models.Friend{}).Error
}

// ListByUser returns every edge the user participates in.
func (r *PostgresFriendRepository) ListByUser(userID uint) ([]models.Friend, error) {
	var edges []models.Friend
	if err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}
