package gateway

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// CommentGateway defines the interface for comment data operations
type CommentGateway interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	GetByPromptID(promptID string) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// PostgresCommentGateway implements CommentGateway for PostgreSQL
type PostgresCommentGateway struct {
	db *gorm.DB
}

// NewPostgresCommentGateway creates a new PostgresCommentGateway
func NewPostgresCommentGateway(db *gorm.DB) *PostgresCommentGateway {
	return &PostgresCommentGateway{db: db}
}

// Create creates a new comment
func (g *PostgresCommentGateway) Create(comment *models.Comment) error {
	return g.db.Create(comment).Error
}

// GetByID retrieves a comment by ID
func (g *PostgresCommentGateway) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := g.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPromptID retrieves all comments on a prompt, oldest first
func (g *PostgresCommentGateway) GetByPromptID(promptID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := g.db.Where("prompt_id = ?", promptID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// Update saves the comment in place
func (g *PostgresCommentGateway) Update(comment *models.Comment) error {
	return g.db.Save(comment).Error
}

// Delete deletes a comment by ID
func (g *PostgresCommentGateway) Delete(id uint) error {
	res := g.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}
