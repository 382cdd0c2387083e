package repositories

import (
	"github.com/spincrate/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByVinylID(vinylID uint) ([]models.Comment, error)
	GetCommentsCount(vinylID uint) (int64, error)
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByVinylID retrieves all comments for an item, oldest first so
// threads read top-down
func (r *PostgresCommentRepository) GetCommentsByVinylID(vinylID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("vinyl_id = ?", vinylID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) GetCommentsCount(vinylID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("vinyl_id = ?", vinylID).Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
