package store

import "github.com/KingCobra-dev/goprompt-sub000/internal/models"

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// State is the full session state held by the Store. Reduce treats it as an
// immutable value: any slice it mutates is copied first, so a snapshot taken
// before a dispatch is never changed by it.
type State struct {
	User          *models.User
	Prompts       []models.Prompt
	Repos         []models.Repo
	Comments      []models.Comment
	Hearts        []models.Heart
	Saves         []models.Save
	Follows       []models.Follow
	StarredRepos  []uint
	Collections   []models.Collection
	Notifications []models.Notification
	Drafts        []models.Draft
	SearchFilters models.SearchFilters
	Theme         string
	Loading       bool
	Error         string
}

// NewState returns the initial session state
func NewState() State {
	return State{
		Theme: ThemeLight,
		SearchFilters: models.SearchFilters{
			SortBy: models.SortTrending,
		},
	}
}

// HasHeart reports whether a heart row exists for (userID, promptID)
func (s State) HasHeart(userID uint, promptID string) bool {
	for _, h := range s.Hearts {
		if h.UserID == userID && h.PromptID == promptID {
			return true
		}
	}
	return false
}

// HasSave reports whether a save row exists for (userID, promptID)
func (s State) HasSave(userID uint, promptID string) bool {
	for _, sv := range s.Saves {
		if sv.UserID == userID && sv.PromptID == promptID {
			return true
		}
	}
	return false
}

// IsFollowing reports whether a follow row exists for (followerID, followingID)
func (s State) IsFollowing(followerID, followingID uint) bool {
	for _, f := range s.Follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true
		}
	}
	return false
}

// HasStarred reports whether the session user has starred the repo
func (s State) HasStarred(repoID uint) bool {
	for _, id := range s.StarredRepos {
		if id == repoID {
			return true
		}
	}
	return false
}

// PromptByID returns the cached prompt with the given hex id, or nil
func (s State) PromptByID(promptID string) *models.Prompt {
	for i := range s.Prompts {
		if s.Prompts[i].ID.Hex() == promptID {
			return &s.Prompts[i]
		}
	}
	return nil
}

// RepoByID returns the cached repo with the given id, or nil
func (s State) RepoByID(repoID uint) *models.Repo {
	for i := range s.Repos {
		if s.Repos[i].ID == repoID {
			return &s.Repos[i]
		}
	}
	return nil
}
