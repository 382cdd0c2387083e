package models

import "time"

// Like represents a like on a catalogue item. Row presence is the liked
// state; toggling inserts or deletes the row.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VinylID   uint      `json:"vinyl_id" gorm:"index;uniqueIndex:idx_vinyl_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_vinyl_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
