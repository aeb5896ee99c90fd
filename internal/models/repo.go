package models

import "gorm.io/gorm"

// Repo represents a named, owned collection of prompts
type Repo struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"index"` // ID of the owning user
	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"index;size:80"`
	Description string `json:"description" gorm:"size:500"`
	Visibility  string `json:"visibility" gorm:"size:10;default:'public'"` // public, private
	Tags        string `json:"tags" gorm:"size:500"`                       // comma-separated, normalized lowercase
	StarCount   int    `json:"star_count" gorm:"default:0"`
	ForkCount   int    `json:"fork_count" gorm:"default:0"`
	PromptCount int    `json:"prompt_count" gorm:"default:0"`
}

// CreateRepoRequest defines the request body for creating a new repo
type CreateRepoRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=80"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Visibility  string   `json:"visibility" validate:"required,oneof=public private"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10"`
}

// UpdateRepoRequest defines the request body for updating an existing repo
type UpdateRepoRequest struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Visibility  string   `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10"`
}
