package models

import "time"

// Media formats accepted for a catalogue item
const (
	FormatVinyl = "vinyl"
	FormatCD    = "cd"
)

// Vinyl represents a physical release in an account's catalogue.
// Deleting a vinyl cascades to its likes and comments.
type Vinyl struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index"`
	Title        string    `json:"title" gorm:"size:200"`
	Artist       string    `json:"artist" gorm:"size:200"`
	Year         int       `json:"year"`
	Genre        string    `json:"genre" gorm:"size:100"`
	Barcode      string    `json:"barcode" gorm:"size:32;index"`
	Format       string    `json:"format" gorm:"size:10;default:'vinyl'"`
	CoverURL     string    `json:"cover_url"`
	Description  string    `json:"description" gorm:"size:1000"`
	GiftFromID   *uint     `json:"gift_from_id,omitempty"`
	SharedWithID *uint     `json:"shared_with_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`

	Likes    []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateVinylRequest defines the request body for adding a catalogue item
type CreateVinylRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	Artist       string `json:"artist" validate:"required,min=1,max=200"`
	Year         int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Genre        string `json:"genre" validate:"omitempty,max=100"`
	Barcode      string `json:"barcode" validate:"omitempty,max=32"`
	Format       string `json:"format" validate:"omitempty,oneof=vinyl cd"`
	CoverURL     string `json:"cover_url" validate:"omitempty,url"`
	Description  string `json:"description" validate:"omitempty,max=1000"`
	GiftFromID   *uint  `json:"gift_from_id,omitempty"`
	SharedWithID *uint  `json:"shared_with_id,omitempty"`
}

// UpdateVinylRequest defines the request body for editing a catalogue item
type UpdateVinylRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Artist      *string `json:"artist,omitempty" validate:"omitempty,min=1,max=200"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Format      *string `json:"format,omitempty" validate:"omitempty,oneof=vinyl cd"`
	CoverURL    *string `json:"cover_url,omitempty" validate:"omitempty,url"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}
