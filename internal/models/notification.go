package models

import "time"

// Notification types (closed enum)
const (
	NotificationFollowRequest  = "FOLLOW_REQUEST"
	NotificationNewFollower    = "NEW_FOLLOWER"
	NotificationFollowAccepted = "FOLLOW_ACCEPTED"
	NotificationVinylLike      = "VINYL_LIKE"
	NotificationVinylComment   = "VINYL_COMMENT"
	NotificationCommentLike    = "COMMENT_LIKE"
)

// Notification represents a persisted notification row. ReferenceID is
// polymorphic: a vinyl id for VINYL_LIKE/VINYL_COMMENT/COMMENT_LIKE, the
// sender's account id for the follow types. Never created for self-actions.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ReferenceID uint      `json:"reference_id"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
