package repositories

import (
	"context"
	"time"

	"github.com/igr/media-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository stores per-user inbox messages.
type MessageRepository interface {
	Append(ctx context.Context, userID uint, text string) error
	ListByUser(ctx context.Context, userID uint) ([]models.Message, error)
	DeleteAllByUser(ctx context.Context, userID uint) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// Append adds a message to the end of the user's inbox.
func (r *MongoMessageRepository) Append(ctx context.Context, userID uint, text string) error {
	msg := models.Message{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// ListByUser returns the user's messages in insertion order.
func (r *MongoMessageRepository) ListByUser(ctx context.Context, userID uint) ([]models.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteAllByUser removes the whole inbox of a deleted user.
func (r *MongoMessageRepository) DeleteAllByUser(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
