// Package session composes the store, the persistence gateway, the page
// codec, and the draft manager into the application-facing surface. Every
// social control goes through the same optimistic lifecycle: mutate locally,
// write durably, reconcile or roll back.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KingCobra-dev/goprompt-sub000/internal/drafts"
	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
	"github.com/KingCobra-dev/goprompt-sub000/internal/pages"
	"github.com/KingCobra-dev/goprompt-sub000/internal/store"
)

// Session is one user's view of the application: session state, current
// page, and the operations the UI invokes. All state flows through the
// injected Store; the Session itself holds no entity data.
type Session struct {
	store         *store.Store
	prompts       gateway.PromptGateway
	repos         gateway.RepoGateway
	social        gateway.SocialGateway
	comments      gateway.CommentGateway
	notifications gateway.NotificationGateway
	drafts        *drafts.Manager
	history       *pages.History
	runner        *Runner
	log           *zap.Logger
}

// Options wires a Session. Store, History and the gateways are required;
// Logger falls back to a no-op logger.
type Options struct {
	Store         *store.Store
	Prompts       gateway.PromptGateway
	Repos         gateway.RepoGateway
	Social        gateway.SocialGateway
	Comments      gateway.CommentGateway
	Notifications gateway.NotificationGateway
	Drafts        *drafts.Manager
	History       *pages.History
	Logger        *zap.Logger
}

// New creates a Session
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		store:         opts.Store,
		prompts:       opts.Prompts,
		repos:         opts.Repos,
		social:        opts.Social,
		comments:      opts.Comments,
		notifications: opts.Notifications,
		drafts:        opts.Drafts,
		history:       opts.History,
		runner:        NewRunner(log),
		log:           log,
	}
}

// Store exposes the underlying state container for subscribers
func (s *Session) Store() *store.Store {
	return s.store
}

// --- Navigation ---

// CurrentPage re-reads the present history location
func (s *Session) CurrentPage() pages.Page {
	return s.history.Current()
}

// NavigateTo pushes a new page onto the history
func (s *Session) NavigateTo(p pages.Page) {
	s.history.Push(p)
}

// ReplacePage overwrites the current history entry
func (s *Session) ReplacePage(p pages.Page) {
	s.history.Replace(p)
}

// Back restores the prior page from history, or Home when there is none
func (s *Session) Back() pages.Page {
	if p, ok := s.history.Back(); ok {
		return p
	}
	return pages.Home{}
}

// --- Social actions (optimistic protocol) ---

// ToggleHeart flips the session user's heart on a prompt. The local state
// updates immediately; the durable write reconciles or rolls it back.
// Signed-out sessions no-op.
func (s *Session) ToggleHeart(ctx context.Context, promptID string) error {
	st := s.store.State()
	if st.User == nil {
		return nil
	}
	userID := st.User.ID
	wasHearted := st.HasHeart(userID, promptID)

	return s.runner.Run(ctx, Command{
		Key: "heart:" + promptID,
		Apply: func() {
			if wasHearted {
				s.store.Dispatch(store.UnheartPrompt{PromptID: promptID})
			} else {
				s.store.Dispatch(store.HeartPrompt{PromptID: promptID})
			}
		},
		Do: func(ctx context.Context) (gateway.ToggleAction, error) {
			return s.social.ToggleHeart(userID, promptID)
		},
		Commit: func(action gateway.ToggleAction) {
			// The gateway verdict is authoritative: correct the optimistic
			// guess when they disagree.
			hearted := s.store.State().HasHeart(userID, promptID)
			if action == gateway.ToggleAdded && !hearted {
				s.store.Dispatch(store.HeartPrompt{PromptID: promptID})
			}
			if action == gateway.ToggleRemoved && hearted {
				s.store.Dispatch(store.UnheartPrompt{PromptID: promptID})
			}
			delta := 1
			if action == gateway.ToggleRemoved {
				delta = -1
			}
			go s.adjustPromptCounter(promptID, "hearts", delta)
		},
		Rollback: func() {
			if wasHearted {
				s.store.Dispatch(store.HeartPrompt{PromptID: promptID})
			} else {
				s.store.Dispatch(store.UnheartPrompt{PromptID: promptID})
			}
		},
	})
}

// ToggleSave flips the session user's save on a prompt, optionally filing
// it into a collection, and notifies the prompt owner on a cross-user save.
func (s *Session) ToggleSave(ctx context.Context, promptID string, collectionID uint) error {
	st := s.store.State()
	if st.User == nil {
		return nil
	}
	actor := *st.User
	wasSaved := st.HasSave(actor.ID, promptID)

	return s.runner.Run(ctx, Command{
		Key: "save:" + promptID,
		Apply: func() {
			if wasSaved {
				s.store.Dispatch(store.UnsavePrompt{PromptID: promptID})
			} else {
				s.store.Dispatch(store.SavePrompt{PromptID: promptID, CollectionID: collectionID})
			}
		},
		Do: func(ctx context.Context) (gateway.ToggleAction, error) {
			return s.social.ToggleSave(actor.ID, promptID, collectionID)
		},
		Commit: func(action gateway.ToggleAction) {
			saved := s.store.State().HasSave(actor.ID, promptID)
			if action == gateway.ToggleAdded && !saved {
				s.store.Dispatch(store.SavePrompt{PromptID: promptID, CollectionID: collectionID})
			}
			if action == gateway.ToggleRemoved && saved {
				s.store.Dispatch(store.UnsavePrompt{PromptID: promptID})
			}
			delta := 1
			if action == gateway.ToggleRemoved {
				delta = -1
			}
			go s.adjustPromptCounter(promptID, "save_count", delta)

			if action == gateway.ToggleAdded {
				if p := s.store.State().PromptByID(promptID); p != nil && p.UserID != actor.ID {
					go s.createNotification(models.Notification{
						Type:        models.NotificationPromptSaved,
						ActorID:     actor.ID,
						RecipientID: p.UserID,
						TargetID:    promptID,
						TargetType:  "prompt",
						Title:       "Prompt saved",
						Message:     fmt.Sprintf("%s saved your prompt %q", actor.Username, p.Title),
					})
				}
			}
		},
		Rollback: func() {
			if wasSaved {
				s.store.Dispatch(store.SavePrompt{PromptID: promptID, CollectionID: collectionID})
			} else {
				s.store.Dispatch(store.UnsavePrompt{PromptID: promptID})
			}
		},
	})
}

// ToggleStar flips the session user's star on a repo
func (s *Session) ToggleStar(ctx context.Context, repoID uint) error {
	st := s.store.State()
	if st.User == nil {
		return nil
	}
	actor := *st.User
	wasStarred := st.HasStarred(repoID)

	return s.runner.Run(ctx, Command{
		Key: fmt.Sprintf("star:%d", repoID),
		Apply: func() {
			if wasStarred {
				s.store.Dispatch(store.UnstarRepo{RepoID: repoID})
			} else {
				s.store.Dispatch(store.StarRepo{RepoID: repoID})
			}
		},
		Do: func(ctx context.Context) (gateway.ToggleAction, error) {
			if wasStarred {
				if err := s.social.UnstarRepo(repoID, actor.ID); err != nil {
					return "", err
				}
				return gateway.ToggleRemoved, nil
			}
			if err := s.social.StarRepo(repoID, actor.ID); err != nil {
				return "", err
			}
			return gateway.ToggleAdded, nil
		},
		Commit: func(action gateway.ToggleAction) {
			starred := s.store.State().HasStarred(repoID)
			if action == gateway.ToggleAdded && !starred {
				s.store.Dispatch(store.StarRepo{RepoID: repoID})
			}
			if action == gateway.ToggleRemoved && starred {
				s.store.Dispatch(store.UnstarRepo{RepoID: repoID})
			}
			delta := 1
			if action == gateway.ToggleRemoved {
				delta = -1
			}
			go func() {
				if err := s.repos.AdjustStarCount(repoID, delta); err != nil {
					s.log.Warn("failed to adjust star count", zap.Uint("repo_id", repoID), zap.Error(err))
				}
			}()
		},
		Rollback: func() {
			if wasStarred {
				s.store.Dispatch(store.StarRepo{RepoID: repoID})
			} else {
				s.store.Dispatch(store.UnstarRepo{RepoID: repoID})
			}
		},
	})
}

// ToggleFollow flips the session user's follow on another user. Following
// yourself no-ops.
func (s *Session) ToggleFollow(ctx context.Context, userID uint) error {
	st := s.store.State()
	if st.User == nil || st.User.ID == userID {
		return nil
	}
	actor := *st.User
	wasFollowing := st.IsFollowing(actor.ID, userID)

	return s.runner.Run(ctx, Command{
		Key: fmt.Sprintf("follow:%d", userID),
		Apply: func() {
			if wasFollowing {
				s.store.Dispatch(store.UnfollowUser{UserID: userID})
			} else {
				s.store.Dispatch(store.FollowUser{UserID: userID})
			}
		},
		Do: func(ctx context.Context) (gateway.ToggleAction, error) {
			if wasFollowing {
				if err := s.social.Unfollow(actor.ID, userID); err != nil {
					return "", err
				}
				return gateway.ToggleRemoved, nil
			}
			if err := s.social.Follow(actor.ID, userID); err != nil {
				return "", err
			}
			return gateway.ToggleAdded, nil
		},
		Commit: func(action gateway.ToggleAction) {
			following := s.store.State().IsFollowing(actor.ID, userID)
			if action == gateway.ToggleAdded && !following {
				s.store.Dispatch(store.FollowUser{UserID: userID})
			}
			if action == gateway.ToggleRemoved && following {
				s.store.Dispatch(store.UnfollowUser{UserID: userID})
			}
			if action == gateway.ToggleAdded {
				go s.createNotification(models.Notification{
					Type:        models.NotificationNewFollower,
					ActorID:     actor.ID,
					RecipientID: userID,
					TargetID:    fmt.Sprintf("%d", actor.ID),
					TargetType:  "user",
					Title:       "New follower",
					Message:     fmt.Sprintf("%s started following you", actor.Username),
				})
			}
		},
		Rollback: func() {
			if wasFollowing {
				s.store.Dispatch(store.FollowUser{UserID: userID})
			} else {
				s.store.Dispatch(store.UnfollowUser{UserID: userID})
			}
		},
	})
}

// --- Prompts ---

// CreatePrompt validates the repo visibility invariant, persists the prompt
// and caches it. A prompt inside a private repo is forced private.
func (s *Session) CreatePrompt(ctx context.Context, prompt models.Prompt) (*models.Prompt, error) {
	st := s.store.State()
	if st.User == nil {
		return nil, fmt.Errorf("not signed in")
	}
	prompt.UserID = st.User.ID

	repo, err := s.repos.GetByID(prompt.RepoID)
	if err != nil {
		return nil, fmt.Errorf("repo not found: %w", err)
	}
	if repo.Visibility == models.VisibilityPrivate {
		prompt.Visibility = models.VisibilityPrivate
	}

	if err := s.prompts.Create(ctx, &prompt); err != nil {
		return nil, err
	}
	if err := s.repos.AdjustPromptCount(prompt.RepoID, 1); err != nil {
		s.log.Warn("failed to adjust prompt count", zap.Uint("repo_id", prompt.RepoID), zap.Error(err))
	}

	s.store.Dispatch(store.AddPrompt{Prompt: prompt})
	return &prompt, nil
}

// ForkPrompt copies a prompt with attribution into the target repo, bumps
// the original's fork counter, and notifies its owner.
func (s *Session) ForkPrompt(ctx context.Context, promptID string, targetRepoID uint) (*models.Prompt, error) {
	st := s.store.State()
	if st.User == nil {
		return nil, fmt.Errorf("not signed in")
	}
	actor := *st.User

	original, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	fork := *original
	fork.RepoID = targetRepoID
	fork.UserID = actor.ID
	fork.ParentID = promptID
	fork.Hearts = 0
	fork.SaveCount = 0
	fork.ForkCount = 0
	fork.CommentCount = 0
	fork.ViewCount = 0
	fork.IsHearted = false
	fork.IsSaved = false

	if err := s.prompts.Create(ctx, &fork); err != nil {
		return nil, err
	}
	if err := s.prompts.AdjustForkCount(ctx, promptID, 1); err != nil {
		s.log.Warn("failed to adjust fork count", zap.String("prompt_id", promptID), zap.Error(err))
	}

	s.store.Dispatch(store.ForkPrompt{OriginalID: promptID, Fork: fork})

	if original.UserID != actor.ID {
		go s.createNotification(models.Notification{
			Type:        models.NotificationPromptForked,
			ActorID:     actor.ID,
			RecipientID: original.UserID,
			TargetID:    promptID,
			TargetType:  "prompt",
			Title:       "Prompt forked",
			Message:     fmt.Sprintf("%s forked your prompt %q", actor.Username, original.Title),
		})
	}
	return &fork, nil
}

// AddComment persists a comment, caches it and notifies the prompt owner
func (s *Session) AddComment(ctx context.Context, promptID string, content string) (*models.Comment, error) {
	st := s.store.State()
	if st.User == nil {
		return nil, fmt.Errorf("not signed in")
	}
	actor := *st.User

	comment := models.Comment{
		PromptID: promptID,
		UserID:   actor.ID,
		Content:  content,
	}
	if err := s.comments.Create(&comment); err != nil {
		return nil, err
	}
	go s.adjustPromptCounter(promptID, "comment_count", 1)

	s.store.Dispatch(store.AddComment{Comment: comment})

	if p := st.PromptByID(promptID); p != nil && p.UserID != actor.ID {
		go s.createNotification(models.Notification{
			Type:        models.NotificationCommentAdded,
			ActorID:     actor.ID,
			RecipientID: p.UserID,
			TargetID:    promptID,
			TargetType:  "prompt",
			Title:       "New comment",
			Message:     fmt.Sprintf("%s commented on your prompt %q", actor.Username, p.Title),
		})
	}
	return &comment, nil
}

// --- Drafts ---

// SaveDraft snapshots the in-progress edit for the session user
func (s *Session) SaveDraft(draft models.Draft) error {
	st := s.store.State()
	if st.User == nil {
		return fmt.Errorf("not signed in")
	}
	draft.UserID = st.User.ID

	saved, err := s.drafts.Save(draft)
	if err != nil {
		return err
	}
	s.store.Dispatch(store.SaveDraft{Draft: saved})
	return nil
}

// LoadDraft returns the session user's draft, if any
func (s *Session) LoadDraft() *models.Draft {
	st := s.store.State()
	if st.User == nil {
		return nil
	}
	return s.drafts.Load(st.User.ID)
}

// PublishDraft turns the user's draft into a persisted prompt and clears
// the draft on success.
func (s *Session) PublishDraft(ctx context.Context, draft models.Draft) (*models.Prompt, error) {
	prompt := models.Prompt{
		RepoID:          draft.RepoID,
		Title:           draft.Title,
		Content:         draft.Content,
		Type:            models.PromptTypeText,
		Tags:            draft.Tags,
		Category:        draft.Category,
		ModelCompat:     draft.ModelCompat,
		Visibility:      draft.Visibility,
		MetaDescription: draft.MetaDescription,
	}

	created, err := s.CreatePrompt(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.drafts.Clear(created.UserID)
	s.store.Dispatch(store.DeleteDraft{DraftID: draft.ID})
	return created, nil
}

// --- Hydration ---

// Hydrate loads the signed-in user's social rows so the cached prompts carry
// correct hearted/saved flags. Called after sign-in.
func (s *Session) Hydrate(ctx context.Context) error {
	st := s.store.State()
	if st.User == nil {
		return nil
	}
	userID := st.User.ID

	heartedIDs, err := s.social.GetHeartedPromptIDs(userID)
	if err != nil {
		return fmt.Errorf("failed to load hearts: %w", err)
	}
	savedIDs, err := s.social.GetSavedPromptIDs(userID)
	if err != nil {
		return fmt.Errorf("failed to load saves: %w", err)
	}
	followingIDs, err := s.social.GetFollowingIDs(userID)
	if err != nil {
		return fmt.Errorf("failed to load follows: %w", err)
	}
	starred, err := s.social.GetStarredRepos(userID)
	if err != nil {
		return fmt.Errorf("failed to load stars: %w", err)
	}

	hearts := make([]models.Heart, 0, len(heartedIDs))
	for _, id := range heartedIDs {
		hearts = append(hearts, models.Heart{UserID: userID, PromptID: id})
	}
	saves := make([]models.Save, 0, len(savedIDs))
	for _, id := range savedIDs {
		saves = append(saves, models.Save{UserID: userID, PromptID: id})
	}
	follows := make([]models.Follow, 0, len(followingIDs))
	for _, id := range followingIDs {
		follows = append(follows, models.Follow{FollowerID: userID, FollowingID: id})
	}

	s.store.Dispatch(store.LoadSocial{
		Hearts:       hearts,
		Saves:        saves,
		Follows:      follows,
		StarredRepos: starred,
	})
	return nil
}

// LoadExplore fetches public prompts matching the current search filters
// into the cache.
func (s *Session) LoadExplore(ctx context.Context) error {
	st := s.store.State()
	f := st.SearchFilters

	prompts, err := s.prompts.GetAll(ctx, gateway.PromptFilter{
		Visibility: models.VisibilityPublic,
		Query:      f.Query,
		Types:      f.Types,
		Tags:       f.Tags,
		SortBy:     f.SortBy,
	})
	if err != nil {
		s.store.Dispatch(store.SetError{Error: err.Error()})
		return err
	}
	s.store.Dispatch(store.LoadPrompts{Prompts: prompts})
	return nil
}

// --- helpers ---

func (s *Session) adjustPromptCounter(promptID, field string, delta int) {
	ctx := context.Background()
	var err error
	switch field {
	case "hearts":
		err = s.prompts.AdjustHearts(ctx, promptID, delta)
	case "save_count":
		err = s.prompts.AdjustSaveCount(ctx, promptID, delta)
	case "comment_count":
		err = s.prompts.AdjustCommentCount(ctx, promptID, delta)
	}
	if err != nil {
		s.log.Warn("failed to adjust prompt counter",
			zap.String("prompt_id", promptID),
			zap.String("field", field),
			zap.Error(err))
	}
}

func (s *Session) createNotification(n models.Notification) {
	if err := s.notifications.Create(&n); err != nil {
		s.log.Warn("failed to create notification", zap.String("type", n.Type), zap.Error(err))
	}
}
