package models

import "time"

// Comment represents a comment on a catalogue item. ParentID links one
// level of threaded replies (depth is a convention, not enforced).
// Deleting a comment cascades to its likes and replies, so the item-level
// cascade reaches every interaction row.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VinylID   uint      `json:"vinyl_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`

	Likes   []CommentLike `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	Replies []Comment     `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// CommentResponse is a comment joined with author display fields and like state
type CommentResponse struct {
	Comment
	Author     UserCompact       `json:"author"`
	LikesCount int64             `json:"likes_count"`
	HasLiked   bool              `json:"has_liked"`
	Replies    []CommentResponse `json:"replies,omitempty"`
}
