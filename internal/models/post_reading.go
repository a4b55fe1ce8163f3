package models

import "time"

// PostReading marks a post as read by a user. These records are removed
// together with the user so no markers dangle after a profile is deleted.
type PostReading struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post"`
	PostID    string    `json:"post_id" gorm:"size:64;uniqueIndex:idx_user_post"`
	CreatedAt time.Time `json:"created_at"`
}
