package gateway

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// RepoGateway defines the interface for repo data operations
type RepoGateway interface {
	GetAll(userID uint) ([]models.Repo, error)
	GetByID(id uint) (*models.Repo, error)
	GetBySlug(slug string) (*models.Repo, error)
	Create(repo *models.Repo) error
	Update(repo *models.Repo) error
	Delete(id uint) error
	AdjustStarCount(repoID uint, delta int) error
	AdjustPromptCount(repoID uint, delta int) error
}

// PostgresRepoGateway implements RepoGateway for PostgreSQL
type PostgresRepoGateway struct {
	db *gorm.DB
}

// NewPostgresRepoGateway creates a new PostgresRepoGateway
func NewPostgresRepoGateway(db *gorm.DB) *PostgresRepoGateway {
	return &PostgresRepoGateway{db: db}
}

// GetAll retrieves repos, optionally restricted to one owner (userID != 0)
func (g *PostgresRepoGateway) GetAll(userID uint) ([]models.Repo, error) {
	var repos []models.Repo
	q := g.db.Order("created_at DESC")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&repos).Error
	return repos, err
}

// GetByID retrieves a repo by ID
func (g *PostgresRepoGateway) GetByID(id uint) (*models.Repo, error) {
	var repo models.Repo
	if err := g.db.First(&repo, id).Error; err != nil {
		return nil, err
	}
	return &repo, nil
}

// GetBySlug retrieves a repo by slug
func (g *PostgresRepoGateway) GetBySlug(slug string) (*models.Repo, error) {
	var repo models.Repo
	if err := g.db.Where("slug = ?", slug).First(&repo).Error; err != nil {
		return nil, err
	}
	return &repo, nil
}

// Create creates a new repo
func (g *PostgresRepoGateway) Create(repo *models.Repo) error {
	return g.db.Create(repo).Error
}

// Update saves the repo in place
func (g *PostgresRepoGateway) Update(repo *models.Repo) error {
	return g.db.Save(repo).Error
}

// Delete deletes a repo by ID
func (g *PostgresRepoGateway) Delete(id uint) error {
	res := g.db.Delete(&models.Repo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("repo not found")
	}
	return nil
}

// AdjustStarCount adjusts the star counter by delta
func (g *PostgresRepoGateway) AdjustStarCount(repoID uint, delta int) error {
	return g.adjust(repoID, "star_count", delta)
}

// AdjustPromptCount adjusts the prompt counter by delta
func (g *PostgresRepoGateway) AdjustPromptCount(repoID uint, delta int) error {
	return g.adjust(repoID, "prompt_count", delta)
}

func (g *PostgresRepoGateway) adjust(repoID uint, column string, delta int) error {
	return g.db.Model(&models.Repo{}).Where("id = ?", repoID).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}
