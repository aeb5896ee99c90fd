package store

import "github.com/KingCobra-dev/goprompt-sub000/internal/models"

// Action is the sealed set of state transitions the reducer understands.
// Every mutation of session state flows through Dispatch as one of these
// variants; nothing mutates State fields directly.
type Action interface {
	isAction()
}

// SetUser replaces the session user (nil on sign-out)
type SetUser struct {
	User *models.User
}

// HeartPrompt appends a heart row for the session user and bumps the
// prompt's heart counter. A duplicate heart is a no-op.
type HeartPrompt struct {
	PromptID string
}

// UnheartPrompt removes the session user's heart row and decrements the
// counter, floored at zero.
type UnheartPrompt struct {
	PromptID string
}

// SavePrompt appends a save row, bumps the save counter, and notifies the
// prompt owner when the owner is not the actor.
type SavePrompt struct {
	PromptID     string
	CollectionID uint
}

// UnsavePrompt removes the save row and decrements the counter, floored at
// zero.
type UnsavePrompt struct {
	PromptID string
}

// ForkPrompt prepends the forked copy, bumps the original's fork counter,
// and notifies the original owner when different from the actor.
type ForkPrompt struct {
	OriginalID string
	Fork       models.Prompt
}

// AddComment appends a comment and bumps the parent prompt's comment counter
type AddComment struct {
	Comment models.Comment
}

// UpdateComment replaces the content of an existing comment
type UpdateComment struct {
	CommentID uint
	Content   string
}

// DeleteComment removes a comment and decrements the parent prompt's
// comment counter, floored at zero.
type DeleteComment struct {
	CommentID uint
}

// FollowUser appends a follow row for the session user. Self-follow and
// duplicate follows are no-ops.
type FollowUser struct {
	UserID uint
}

// UnfollowUser removes the session user's follow row
type UnfollowUser struct {
	UserID uint
}

// AddPrompt prepends a prompt to the cached collection
type AddPrompt struct {
	Prompt models.Prompt
}

// UpdatePrompt replaces the cached prompt with the same id
type UpdatePrompt struct {
	Prompt models.Prompt
}

// DeletePrompt removes the cached prompt with the given id
type DeletePrompt struct {
	PromptID string
}

// AddRepo prepends a repo to the cached collection
type AddRepo struct {
	Repo models.Repo
}

// UpdateRepo replaces the cached repo with the same id
type UpdateRepo struct {
	Repo models.Repo
}

// DeleteRepo removes the repo and every cached prompt belonging to it
type DeleteRepo struct {
	RepoID uint
}

// StarRepo marks the repo starred by the session user, bumps its star
// counter, and notifies the owner when different from the actor.
type StarRepo struct {
	RepoID uint
}

// UnstarRepo removes the star and decrements the counter, floored at zero
type UnstarRepo struct {
	RepoID uint
}

// SaveDraft upserts a draft by id
type SaveDraft struct {
	Draft models.Draft
}

// DeleteDraft removes the draft with the given id
type DeleteDraft struct {
	DraftID string
}

// SetSearchFilters shallow-merges a partial filter patch
type SetSearchFilters struct {
	Patch models.SearchFiltersPatch
}

// SetTheme replaces the theme preference
type SetTheme struct {
	Theme string
}

// SetLoading replaces the global loading flag
type SetLoading struct {
	Loading bool
}

// SetError replaces the global error message ("" clears it)
type SetError struct {
	Error string
}

// LoadPrompts replaces the cached prompt collection, re-deriving the
// session-only hearted/saved flags from the cached join rows.
type LoadPrompts struct {
	Prompts []models.Prompt
}

// LoadRepos replaces the cached repo collection
type LoadRepos struct {
	Repos []models.Repo
}

// LoadNotifications replaces the cached notification collection
type LoadNotifications struct {
	Notifications []models.Notification
}

// LoadSocial replaces the session user's cached social join rows and
// re-derives the prompt flags.
type LoadSocial struct {
	Hearts       []models.Heart
	Saves        []models.Save
	Follows      []models.Follow
	StarredRepos []uint
}

// AddNotification appends a notification (used when the server pushes one)
type AddNotification struct {
	Notification models.Notification
}

// MarkNotificationRead flags a single notification as read
type MarkNotificationRead struct {
	NotificationID uint
}

// MarkAllNotificationsRead flags every notification as read
type MarkAllNotificationsRead struct{}

func (SetUser) isAction()                  {}
func (HeartPrompt) isAction()              {}
func (UnheartPrompt) isAction()            {}
func (SavePrompt) isAction()               {}
func (UnsavePrompt) isAction()             {}
func (ForkPrompt) isAction()               {}
func (AddComment) isAction()               {}
func (UpdateComment) isAction()            {}
func (DeleteComment) isAction()            {}
func (FollowUser) isAction()               {}
func (UnfollowUser) isAction()             {}
func (AddPrompt) isAction()                {}
func (UpdatePrompt) isAction()             {}
func (DeletePrompt) isAction()             {}
func (AddRepo) isAction()                  {}
func (UpdateRepo) isAction()               {}
func (DeleteRepo) isAction()               {}
func (StarRepo) isAction()                 {}
func (UnstarRepo) isAction()               {}
func (SaveDraft) isAction()                {}
func (DeleteDraft) isAction()              {}
func (SetSearchFilters) isAction()         {}
func (SetTheme) isAction()                 {}
func (SetLoading) isAction()               {}
func (SetError) isAction()                 {}
func (LoadPrompts) isAction()              {}
func (LoadRepos) isAction()                {}
func (LoadNotifications) isAction()        {}
func (LoadSocial) isAction()               {}
func (AddNotification) isAction()          {}
func (MarkNotificationRead) isAction()     {}
func (MarkAllNotificationsRead) isAction() {}
