package store

import (
	"fmt"
	"time"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// Reduce is the pure state transition function. It never performs I/O and
// never returns an error: invariant violations (duplicate heart, self-follow,
// negative counters) resolve to unchanged or clamped state so the session
// stays consistent no matter what is dispatched.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetUser:
		s.User = a.User
		return s

	case HeartPrompt:
		if s.User == nil || s.HasHeart(s.User.ID, a.PromptID) {
			return s
		}
		s.Hearts = append(cloneHearts(s.Hearts), models.Heart{
			UserID:    s.User.ID,
			PromptID:  a.PromptID,
			CreatedAt: time.Now(),
		})
		s.Prompts = mutatePrompt(s.Prompts, a.PromptID, func(p *models.Prompt) {
			p.Hearts++
			p.IsHearted = true
		})
		return s

	case UnheartPrompt:
		if s.User == nil {
			return s
		}
		hearts, removed := removeHeart(s.Hearts, s.User.ID, a.PromptID)
		if !removed {
			return s
		}
		s.Hearts = hearts
		s.Prompts = mutatePrompt(s.Prompts, a.PromptID, func(p *models.Prompt) {
			if p.Hearts > 0 {
				p.Hearts--
			}
			p.IsHearted = false
		})
		return s

	case SavePrompt:
		if s.User == nil || s.HasSave(s.User.ID, a.PromptID) {
			return s
		}
		s.Saves = append(cloneSaves(s.Saves), models.Save{
			UserID:       s.User.ID,
			PromptID:     a.PromptID,
			CollectionID: a.CollectionID,
			CreatedAt:    time.Now(),
		})
		s.Prompts = mutatePrompt(s.Prompts, a.PromptID, func(p *models.Prompt) {
			p.SaveCount++
			p.IsSaved = true
		})
		if p := s.PromptByID(a.PromptID); p != nil && p.UserID != s.User.ID {
			s.Notifications = appendNotification(s.Notifications, models.Notification{
				Type:        models.NotificationPromptSaved,
				ActorID:     s.User.ID,
				RecipientID: p.UserID,
				TargetID:    a.PromptID,
				TargetType:  "prompt",
				Title:       "Prompt saved",
				Message:     fmt.Sprintf("%s saved your prompt %q", s.User.Username, p.Title),
			})
		}
		return s

	case UnsavePrompt:
		if s.User == nil {
			return s
		}
		saves, removed := removeSave(s.Saves, s.User.ID, a.PromptID)
		if !removed {
			return s
		}
		s.Saves = saves
		s.Prompts = mutatePrompt(s.Prompts, a.PromptID, func(p *models.Prompt) {
			if p.SaveCount > 0 {
				p.SaveCount--
			}
			p.IsSaved = false
		})
		return s

	case ForkPrompt:
		original := s.PromptByID(a.OriginalID)
		s.Prompts = mutatePrompt(s.Prompts, a.OriginalID, func(p *models.Prompt) {
			p.ForkCount++
		})
		s.Prompts = append([]models.Prompt{a.Fork}, s.Prompts...)
		if original != nil && original.UserID != a.Fork.UserID {
			s.Notifications = appendNotification(s.Notifications, models.Notification{
				Type:        models.NotificationPromptForked,
				ActorID:     a.Fork.UserID,
				RecipientID: original.UserID,
				TargetID:    a.OriginalID,
				TargetType:  "prompt",
				Title:       "Prompt forked",
				Message:     fmt.Sprintf("your prompt %q was forked", original.Title),
			})
		}
		return s

	case AddComment:
		s.Comments = append(cloneComments(s.Comments), a.Comment)
		s.Prompts = mutatePrompt(s.Prompts, a.Comment.PromptID, func(p *models.Prompt) {
			p.CommentCount++
		})
		return s

	case UpdateComment:
		comments := cloneComments(s.Comments)
		for i := range comments {
			if comments[i].ID == a.CommentID {
				comments[i].Content = a.Content
				break
			}
		}
		s.Comments = comments
		return s

	case DeleteComment:
		var promptID string
		comments := make([]models.Comment, 0, len(s.Comments))
		for _, c := range s.Comments {
			if c.ID == a.CommentID {
				promptID = c.PromptID
				continue
			}
			comments = append(comments, c)
		}
		if promptID == "" {
			return s
		}
		s.Comments = comments
		s.Prompts = mutatePrompt(s.Prompts, promptID, func(p *models.Prompt) {
			if p.CommentCount > 0 {
				p.CommentCount--
			}
		})
		return s

	case FollowUser:
		if s.User == nil || a.UserID == s.User.ID || s.IsFollowing(s.User.ID, a.UserID) {
			return s
		}
		s.Follows = append(cloneFollows(s.Follows), models.Follow{
			FollowerID:  s.User.ID,
			FollowingID: a.UserID,
			CreatedAt:   time.Now(),
		})
		s.Notifications = appendNotification(s.Notifications, models.Notification{
			Type:        models.NotificationNewFollower,
			ActorID:     s.User.ID,
			RecipientID: a.UserID,
			TargetID:    fmt.Sprintf("%d", s.User.ID),
			TargetType:  "user",
			Title:       "New follower",
			Message:     fmt.Sprintf("%s started following you", s.User.Username),
		})
		return s

	case UnfollowUser:
		if s.User == nil {
			return s
		}
		follows := make([]models.Follow, 0, len(s.Follows))
		for _, f := range s.Follows {
			if f.FollowerID == s.User.ID && f.FollowingID == a.UserID {
				continue
			}
			follows = append(follows, f)
		}
		s.Follows = follows
		return s

	case AddPrompt:
		s.Prompts = append([]models.Prompt{a.Prompt}, s.Prompts...)
		return s

	case UpdatePrompt:
		prompts := clonePrompts(s.Prompts)
		for i := range prompts {
			if prompts[i].ID == a.Prompt.ID {
				prompts[i] = a.Prompt
				break
			}
		}
		s.Prompts = prompts
		return s

	case DeletePrompt:
		prompts := make([]models.Prompt, 0, len(s.Prompts))
		for _, p := range s.Prompts {
			if p.ID.Hex() == a.PromptID {
				continue
			}
			prompts = append(prompts, p)
		}
		s.Prompts = prompts
		return s

	case AddRepo:
		s.Repos = append([]models.Repo{a.Repo}, s.Repos...)
		return s

	case UpdateRepo:
		repos := cloneRepos(s.Repos)
		for i := range repos {
			if repos[i].ID == a.Repo.ID {
				repos[i] = a.Repo
				break
			}
		}
		s.Repos = repos
		return s

	case DeleteRepo:
		repos := make([]models.Repo, 0, len(s.Repos))
		for _, r := range s.Repos {
			if r.ID == a.RepoID {
				continue
			}
			repos = append(repos, r)
		}
		s.Repos = repos
		// repo deletion cascades to its prompts
		prompts := make([]models.Prompt, 0, len(s.Prompts))
		for _, p := range s.Prompts {
			if p.RepoID == a.RepoID {
				continue
			}
			prompts = append(prompts, p)
		}
		s.Prompts = prompts
		return s

	case StarRepo:
		if s.User == nil || s.HasStarred(a.RepoID) {
			return s
		}
		s.StarredRepos = append(append([]uint(nil), s.StarredRepos...), a.RepoID)
		s.Repos = mutateRepo(s.Repos, a.RepoID, func(r *models.Repo) {
			r.StarCount++
		})
		if r := s.RepoByID(a.RepoID); r != nil && r.UserID != s.User.ID {
			s.Notifications = appendNotification(s.Notifications, models.Notification{
				Type:        models.NotificationRepoStarred,
				ActorID:     s.User.ID,
				RecipientID: r.UserID,
				TargetID:    fmt.Sprintf("%d", a.RepoID),
				TargetType:  "repo",
				Title:       "Repo starred",
				Message:     fmt.Sprintf("%s starred your repo %q", s.User.Username, r.Name),
			})
		}
		return s

	case UnstarRepo:
		if s.User == nil || !s.HasStarred(a.RepoID) {
			return s
		}
		starred := make([]uint, 0, len(s.StarredRepos))
		for _, id := range s.StarredRepos {
			if id == a.RepoID {
				continue
			}
			starred = append(starred, id)
		}
		s.StarredRepos = starred
		s.Repos = mutateRepo(s.Repos, a.RepoID, func(r *models.Repo) {
			if r.StarCount > 0 {
				r.StarCount--
			}
		})
		return s

	case SaveDraft:
		drafts := cloneDrafts(s.Drafts)
		for i := range drafts {
			if drafts[i].ID == a.Draft.ID {
				drafts[i] = a.Draft
				s.Drafts = drafts
				return s
			}
		}
		s.Drafts = append(drafts, a.Draft)
		return s

	case DeleteDraft:
		drafts := make([]models.Draft, 0, len(s.Drafts))
		for _, d := range s.Drafts {
			if d.ID == a.DraftID {
				continue
			}
			drafts = append(drafts, d)
		}
		s.Drafts = drafts
		return s

	case SetSearchFilters:
		f := s.SearchFilters
		if a.Patch.Query != nil {
			f.Query = *a.Patch.Query
		}
		if a.Patch.Types != nil {
			f.Types = *a.Patch.Types
		}
		if a.Patch.Models != nil {
			f.Models = *a.Patch.Models
		}
		if a.Patch.Tags != nil {
			f.Tags = *a.Patch.Tags
		}
		if a.Patch.Categories != nil {
			f.Categories = *a.Patch.Categories
		}
		if a.Patch.SortBy != nil {
			f.SortBy = *a.Patch.SortBy
		}
		s.SearchFilters = f
		return s

	case SetTheme:
		s.Theme = a.Theme
		return s

	case SetLoading:
		s.Loading = a.Loading
		return s

	case SetError:
		s.Error = a.Error
		return s

	case LoadPrompts:
		s.Prompts = reflagPrompts(clonePrompts(a.Prompts), s)
		return s

	case LoadRepos:
		s.Repos = cloneRepos(a.Repos)
		return s

	case LoadNotifications:
		s.Notifications = cloneNotifications(a.Notifications)
		return s

	case LoadSocial:
		s.Hearts = cloneHearts(a.Hearts)
		s.Saves = cloneSaves(a.Saves)
		s.Follows = cloneFollows(a.Follows)
		s.StarredRepos = append([]uint(nil), a.StarredRepos...)
		s.Prompts = reflagPrompts(clonePrompts(s.Prompts), s)
		return s

	case AddNotification:
		s.Notifications = appendNotification(s.Notifications, a.Notification)
		return s

	case MarkNotificationRead:
		notifications := cloneNotifications(s.Notifications)
		for i := range notifications {
			if notifications[i].ID == a.NotificationID {
				notifications[i].IsRead = true
				break
			}
		}
		s.Notifications = notifications
		return s

	case MarkAllNotificationsRead:
		notifications := cloneNotifications(s.Notifications)
		for i := range notifications {
			notifications[i].IsRead = true
		}
		s.Notifications = notifications
		return s
	}

	return s
}

func clonePrompts(ps []models.Prompt) []models.Prompt {
	return append([]models.Prompt(nil), ps...)
}

func cloneRepos(rs []models.Repo) []models.Repo {
	return append([]models.Repo(nil), rs...)
}

func cloneHearts(hs []models.Heart) []models.Heart {
	return append([]models.Heart(nil), hs...)
}

func cloneSaves(ss []models.Save) []models.Save {
	return append([]models.Save(nil), ss...)
}

func cloneFollows(fs []models.Follow) []models.Follow {
	return append([]models.Follow(nil), fs...)
}

func cloneComments(cs []models.Comment) []models.Comment {
	return append([]models.Comment(nil), cs...)
}

func cloneDrafts(ds []models.Draft) []models.Draft {
	return append([]models.Draft(nil), ds...)
}

func cloneNotifications(ns []models.Notification) []models.Notification {
	return append([]models.Notification(nil), ns...)
}

// mutatePrompt returns a copy of prompts with fn applied to the prompt with
// the given hex id. The input slice is never modified.
func mutatePrompt(prompts []models.Prompt, promptID string, fn func(*models.Prompt)) []models.Prompt {
	out := clonePrompts(prompts)
	for i := range out {
		if out[i].ID.Hex() == promptID {
			fn(&out[i])
			break
		}
	}
	return out
}

func mutateRepo(repos []models.Repo, repoID uint, fn func(*models.Repo)) []models.Repo {
	out := cloneRepos(repos)
	for i := range out {
		if out[i].ID == repoID {
			fn(&out[i])
			break
		}
	}
	return out
}

func removeHeart(hearts []models.Heart, userID uint, promptID string) ([]models.Heart, bool) {
	out := make([]models.Heart, 0, len(hearts))
	removed := false
	for _, h := range hearts {
		if h.UserID == userID && h.PromptID == promptID {
			removed = true
			continue
		}
		out = append(out, h)
	}
	return out, removed
}

func removeSave(saves []models.Save, userID uint, promptID string) ([]models.Save, bool) {
	out := make([]models.Save, 0, len(saves))
	removed := false
	for _, sv := range saves {
		if sv.UserID == userID && sv.PromptID == promptID {
			removed = true
			continue
		}
		out = append(out, sv)
	}
	return out, removed
}

// reflagPrompts re-derives the session-only hearted/saved flags from the
// cached join rows. The input slice is assumed to be owned by the caller.
func reflagPrompts(prompts []models.Prompt, s State) []models.Prompt {
	if s.User == nil {
		return prompts
	}
	for i := range prompts {
		id := prompts[i].ID.Hex()
		prompts[i].IsHearted = s.HasHeart(s.User.ID, id)
		prompts[i].IsSaved = s.HasSave(s.User.ID, id)
	}
	return prompts
}

func appendNotification(ns []models.Notification, n models.Notification) []models.Notification {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return append(cloneNotifications(ns), n)
}
