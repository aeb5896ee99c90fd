package models

import "time"

// Heart represents a like/favorite relationship between a user and a prompt
type Heart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_prompt_heart"`
	PromptID  string    `json:"prompt_id" gorm:"index;uniqueIndex:idx_user_prompt_heart"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}

// Save represents a bookmark relationship between a user and a prompt,
// optionally grouped into a collection
type Save struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_prompt_save"`
	PromptID     string    `json:"prompt_id" gorm:"index;uniqueIndex:idx_user_prompt_save"` // MongoDB ObjectID as string
	CollectionID uint      `json:"collection_id,omitempty" gorm:"index"`                    // 0 means no collection
	CreatedAt    time.Time `json:"created_at"`
}

// Follow represents a follow relationship between two users
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// RepoStar represents a star on a repo
type RepoStar struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RepoID    uint      `json:"repo_id" gorm:"index;uniqueIndex:idx_repo_user_star"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_repo_user_star"`
	CreatedAt time.Time `json:"created_at"`
}

// Collection represents a user-owned named group of saved prompts
type Collection struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Name        string    `json:"name" gorm:"size:100"`
	Description string    `json:"description" gorm:"size:200"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCollectionRequest defines the request body for creating a collection
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
}
