package models

import "time"

// FriendStatus is the state of a directed relationship edge.
type FriendStatus string

const (
	// StatusSubscription is a one-way follow: an invitation has been sent
	// but not accepted.
	StatusSubscription FriendStatus = "subscription"

	// StatusFriend means the invitation was accepted and the relationship
	// is mutual. There is no transition back out of this state; the edge
	// only disappears when one of its users is deleted.
	StatusFriend FriendStatus = "friend"
)

// Friend is a directed relationship edge from the initiating user to the
// target user. The composite primary key makes the ordered pair unique.
type Friend struct {
	User1ID   uint         `json:"user1_id" gorm:"primaryKey"`
	User2ID   uint         `json:"user2_id" gorm:"primaryKey"`
	Status    FriendStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FriendActionRequest names the other user of a relationship operation.
type FriendActionRequest struct {
	TargetName string `json:"target_name" validate:"required,min=2,max=50"`
}
