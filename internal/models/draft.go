package models

import "time"

// Draft is a user-scoped snapshot of an in-progress prompt edit. Drafts are
// kept in local key-value storage, never in the databases, and are cleared
// when the prompt is published.
type Draft struct {
	ID              string    `json:"id"`
	UserID          uint      `json:"user_id"`
	RepoID          uint      `json:"repo_id,omitempty"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	ModelCompat     []string  `json:"model_compat,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Visibility      string    `json:"visibility"`
	MetaDescription string    `json:"meta_description,omitempty"`
	LastSaved       time.Time `json:"last_saved"`
}
