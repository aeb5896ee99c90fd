package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User roles
const (
	RoleGeneral = "general"
	RolePro     = "pro"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex;size:30"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Role        string `json:"role" gorm:"size:20;default:'general'"` // general, pro, admin
	Bio         string `json:"bio" gorm:"size:500"`
	Website     string `json:"website"`
	GithubURL   string `json:"github_url"`
	TwitterURL  string `json:"twitter_url"`
	Subscribed  bool   `json:"subscribed" gorm:"default:false"`
	SaveCount   int    `json:"save_count" gorm:"default:0"`
	Reputation  int    `json:"reputation" gorm:"default:0"`
	Password    string `json:"-"`                                         // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
}

// UserCompact is the minimal user shape embedded in enriched responses
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ToCompact returns the compact representation of a user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID will be provided by the client after Firebase Auth
}

type CreateLocalUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Website    string `json:"website,omitempty" validate:"omitempty,url"`
	GithubURL  string `json:"github_url,omitempty" validate:"omitempty,url"`
	TwitterURL string `json:"twitter_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
