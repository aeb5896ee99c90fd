package models

import "time"

// Notification types
const (
	NotificationPromptSaved  = "prompt_saved"
	NotificationPromptForked = "prompt_forked"
	NotificationNewFollower  = "new_follower"
	NotificationCommentAdded = "comment_added"
	NotificationRepoStarred  = "repo_starred"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // prompt_saved, prompt_forked, new_follower, comment_added, repo_starred
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    string    `json:"target_id"`                  // prompt ID, repo ID, user ID, etc.
	TargetType  string    `json:"target_type" gorm:"size:20"` // prompt, repo, user, comment
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
