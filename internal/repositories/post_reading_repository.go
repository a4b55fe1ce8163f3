package repositories

import (
	"github.com/igr/media-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostReadingRepository tracks which posts a user has read.
type PostReadingRepository interface {
	MarkRead(userID uint, postID string) error
	ListByUser(userID uint) ([]models.PostReading, error)
	DeleteAllByUser(userID uint) error
}

// PostgresPostReadingRepository implements PostReadingRepository for PostgreSQL
type PostgresPostReadingRepository struct {
	db *gorm.DB
}

// NewPostgresPostReadingRepository creates a new PostgresPostReadingRepository
func NewPostgresPostReadingRepository(db *gorm.DB) *PostgresPostReadingRepository {
	return &PostgresPostReadingRepository{db: db}
}

// MarkRead records that the user has read the post. Marking twice is a no-op.
func (r *PostgresPostReadingRepository) MarkRead(userID uint, postID string) error {
	reading := models.PostReading{UserID: userID, PostID: postID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&reading).Error
}

// ListByUser returns the user's read markers.
func (r *PostgresPostReadingRepository) ListByUser(userID uint) ([]models.PostReading, error) {
	var readings []models.PostReading
	if err := r.db.Where("user_id = ?", userID).Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

// DeleteAllByUser removes every read marker belonging to a deleted user.
func (r *PostgresPostReadingRepository) DeleteAllByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.PostReading{}).Error
}
