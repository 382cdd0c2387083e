package models

import "time"

// PushSubscription stores a browser push endpoint and its encryption keys
// for one account. Removed automatically when the push provider reports the
// endpoint as gone.
type PushSubscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_endpoint"`
	Endpoint  string    `json:"endpoint" gorm:"size:500;uniqueIndex:idx_user_endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscribeRequest defines the request body for registering a push subscription
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// UnsubscribeRequest defines the request body for removing a push subscription
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}
