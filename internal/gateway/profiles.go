package gateway

import (
	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// ProfileGateway defines the interface for user profile operations
type ProfileGateway interface {
	Create(user *models.User) error
	GetProfile(userID uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByFirebaseUID(firebaseUID string) (*models.User, error)
	Update(user *models.User) error
	UpdateProfile(userID uint, patch models.UpdateUserRequest) (*models.User, error)
	CheckUsernameAvailable(username string) (bool, error)
	SearchUsers(query string) ([]models.User, error)
}

// PostgresProfileGateway implements ProfileGateway for PostgreSQL
type PostgresProfileGateway struct {
	db *gorm.DB
}

// NewPostgresProfileGateway creates a new PostgresProfileGateway
func NewPostgresProfileGateway(db *gorm.DB) *PostgresProfileGateway {
	return &PostgresProfileGateway{db: db}
}

// Create creates a new user
func (g *PostgresProfileGateway) Create(user *models.User) error {
	return g.db.Create(user).Error
}

// GetProfile retrieves a user by ID
func (g *PostgresProfileGateway) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := g.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (g *PostgresProfileGateway) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := g.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByFirebaseUID retrieves a user by Firebase UID
func (g *PostgresProfileGateway) GetByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := g.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves the user in place
func (g *PostgresProfileGateway) Update(user *models.User) error {
	return g.db.Save(user).Error
}

// UpdateProfile applies the non-empty fields of the patch and returns the
// updated user.
func (g *PostgresProfileGateway) UpdateProfile(userID uint, patch models.UpdateUserRequest) (*models.User, error) {
	user, err := g.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.Bio != "" {
		user.Bio = patch.Bio
	}
	if patch.Website != "" {
		user.Website = patch.Website
	}
	if patch.GithubURL != "" {
		user.GithubURL = patch.GithubURL
	}
	if patch.TwitterURL != "" {
		user.TwitterURL = patch.TwitterURL
	}

	if err := g.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUsernameAvailable reports whether no user holds the username yet
func (g *PostgresProfileGateway) CheckUsernameAvailable(username string) (bool, error) {
	var count int64
	if err := g.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// SearchUsers retrieves users whose username or name matches the query
func (g *PostgresProfileGateway) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	like := "%" + query + "%"
	err := g.db.Where("username ILIKE ? OR name ILIKE ?", like, like).Limit(20).Find(&users).Error
	return users, err
}
