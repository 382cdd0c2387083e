package repositories

import (
	"fmt"

	"github.com/spincrate/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for catalogue item like operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(vinylID, userID uint) error
	HasUserLikedVinyl(vinylID, userID uint) (bool, error)
	GetLikesCount(vinylID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresLikeRepository) DeleteLike(vinylID, userID uint) error {
	res := r.db.Where("vinyl_id = ? AND user_id = ?", vinylID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

func (r *PostgresLikeRepository) HasUserLikedVinyl(vinylID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("vinyl_id = ? AND user_id = ?", vinylID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresLikeRepository) GetLikesCount(vinylID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("vinyl_id = ?", vinylID).Count(&count).Error
	return count, err
}
