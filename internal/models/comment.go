package models

import "gorm.io/gorm"

// Comment represents a comment on a prompt
type Comment struct {
	gorm.Model
	PromptID   string `json:"prompt_id" gorm:"index"` // ID of the prompt the comment belongs to (MongoDB ObjectID as string)
	RepoID     uint   `json:"repo_id,omitempty" gorm:"index"`
	UserID     uint   `json:"user_id" gorm:"index"` // ID of the user who made the comment
	Content    string `json:"content" validate:"required,min=1,max=500"`
	HeartCount int    `json:"heart_count" gorm:"default:0"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PromptID string `json:"prompt_id" validate:"required"`
	RepoID   uint   `json:"repo_id,omitempty"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
