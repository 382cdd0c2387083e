package repositories

import (
	"github.com/spincrate/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	GetFollow(followerID, followingID uint) (*models.Follow, error)
	AcceptFollow(followerID, followingID uint) (int64, error)
	DeleteFollow(followerID, followingID uint) (int64, error)
	GetFollowStatus(followerID, followingID uint) (string, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
	GetPendingRequests(userID uint) ([]models.Follow, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) GetFollow(followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error; err != nil {
		return nil, err
	}
	return &follow, nil
}

// AcceptFollow transitions a pending edge to accepted. The UPDATE is scoped
// by both ids and the pending status; zero rows affected is not an error.
func (r *PostgresFollowRepository) AcceptFollow(followerID, followingID uint) (int64, error) {
	res := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.FollowStatusPending).
		Update("status", models.FollowStatusAccepted)
	return res.RowsAffected, res.Error
}

// DeleteFollow removes the edge unconditionally; reject and unfollow are the
// same stored operation, distinct only by caller intent
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) (int64, error) {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	return res.RowsAffected, res.Error
}

// GetFollowStatus returns pending, accepted, or none for the ordered pair
func (r *PostgresFollowRepository) GetFollowStatus(followerID, followingID uint) (string, error) {
	var follow models.Follow
	err := r.db.Select("status").
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err == gorm.ErrRecordNotFound {
		return models.FollowStatusNone, nil
	}
	if err != nil {
		return "", err
	}
	return follow.Status, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").
			Where("following_id = ? AND status = ?", userID, models.FollowStatusAccepted),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").
			Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted).
		Count(&count).Error
	return count, err
}

// GetPendingRequests retrieves incoming pending follow requests for a user
func (r *PostgresFollowRepository) GetPendingRequests(userID uint) ([]models.Follow, error) {
	var requests []models.Follow
	err := r.db.Where("following_id = ? AND status = ?", userID, models.FollowStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
