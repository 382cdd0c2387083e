package repositories

import (
	"github.com/spincrate/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushSubscriptionRepository defines the interface for push subscription operations
type PushSubscriptionRepository interface {
	UpsertSubscription(sub *models.PushSubscription) error
	GetByUserID(userID uint) ([]models.PushSubscription, error)
	DeleteByEndpoint(userID uint, endpoint string) error
	DeleteByID(id uint) error
}

type postgresPushSubscriptionRepository struct {
	db *gorm.DB
}

func NewPostgresPushSubscriptionRepository(db *gorm.DB) PushSubscriptionRepository {
	return &postgresPushSubscriptionRepository{db: db}
}

// UpsertSubscription refreshes the keys when the same endpoint re-registers
func (r *postgresPushSubscriptionRepository) UpsertSubscription(sub *models.PushSubscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(sub).Error
}

func (r *postgresPushSubscriptionRepository) GetByUserID(userID uint) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	err := r.db.Where("user_id = ?", userID).Find(&subs).Error
	return subs, err
}

func (r *postgresPushSubscriptionRepository) DeleteByEndpoint(userID uint, endpoint string) error {
	return r.db.Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{}).Error
}

// DeleteByID removes a subscription the push provider reported as gone
func (r *postgresPushSubscriptionRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.PushSubscription{}, id).Error
}
