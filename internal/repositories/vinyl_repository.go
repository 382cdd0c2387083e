package repositories

import (
	"github.com/spincrate/backend/internal/models"
	"gorm.io/gorm"
)

// VinylWithCounts is a catalogue item joined with interaction counts and
// the requesting user's like state
type VinylWithCounts struct {
	models.Vinyl
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	HasLiked      bool  `json:"has_liked"`
}

// VinylRepository defines the interface for catalogue item operations
type VinylRepository interface {
	CreateVinyl(vinyl *models.Vinyl) error
	GetVinylByID(id uint) (*models.Vinyl, error)
	GetVinylsByUserID(userID uint) ([]models.Vinyl, error)
	GetVinylsCount(userID uint) (int64, error)
	UpdateVinyl(vinyl *models.Vinyl) error
	DeleteVinyl(id uint) error
	GetRecentFeed(userID uint, limit, offset int) ([]VinylWithCounts, int64, error)
}

// PostgresVinylRepository implements VinylRepository for PostgreSQL
type PostgresVinylRepository struct {
	db *gorm.DB
}

// NewPostgresVinylRepository creates a new PostgresVinylRepository
func NewPostgresVinylRepository(db *gorm.DB) *PostgresVinylRepository {
	return &PostgresVinylRepository{db: db}
}

func (r *PostgresVinylRepository) CreateVinyl(vinyl *models.Vinyl) error {
	return r.db.Create(vinyl).Error
}

func (r *PostgresVinylRepository) GetVinylByID(id uint) (*models.Vinyl, error) {
	var vinyl models.Vinyl
	if err := r.db.First(&vinyl, id).Error; err != nil {
		return nil, err
	}
	return &vinyl, nil
}

func (r *PostgresVinylRepository) GetVinylsByUserID(userID uint) ([]models.Vinyl, error) {
	var vinyls []models.Vinyl
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&vinyls).Error
	return vinyls, err
}

func (r *PostgresVinylRepository) GetVinylsCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vinyl{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresVinylRepository) UpdateVinyl(vinyl *models.Vinyl) error {
	return r.db.Save(vinyl).Error
}

// DeleteVinyl hard-deletes a catalogue item; likes and comments go with it
// via the foreign-key cascade
func (r *PostgresVinylRepository) DeleteVinyl(id uint) error {
	return r.db.Delete(&models.Vinyl{}, id).Error
}

// GetRecentFeed returns items owned by accounts the user follows (accepted
// edges only), with per-item like/comment counts and the user's own like
// state, ordered by addition time descending with id as tie-break.
func (r *PostgresVinylRepository) GetRecentFeed(userID uint, limit, offset int) ([]VinylWithCounts, int64, error) {
	followingIDs := r.db.Table("follows").Select("following_id").
		Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted)

	var total int64
	if err := r.db.Model(&models.Vinyl{}).Where("user_id IN (?)", followingIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []VinylWithCounts
	err := r.db.Model(&models.Vinyl{}).
		Select(`vinyls.*,
			(SELECT COUNT(*) FROM likes WHERE likes.vinyl_id = vinyls.id) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.vinyl_id = vinyls.id) AS comments_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.vinyl_id = vinyls.id AND likes.user_id = ?) AS has_liked`, userID).
		Where("user_id IN (?)", followingIDs).
		Order("vinyls.created_at DESC, vinyls.id DESC").
		Limit(limit).Offset(offset).
		Scan(&items).Error
	return items, total, err
}
