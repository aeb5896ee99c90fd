package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KingCobra-dev/goprompt-sub000/internal/drafts"
	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/kvstore"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
	"github.com/KingCobra-dev/goprompt-sub000/internal/pages"
	"github.com/KingCobra-dev/goprompt-sub000/internal/store"
)

// --- gateway fakes ---

type fakePrompts struct {
	mu      sync.Mutex
	byID    map[string]models.Prompt
	created []models.Prompt
}

func newFakePrompts() *fakePrompts {
	return &fakePrompts{byID: make(map[string]models.Prompt)}
}

func (f *fakePrompts) GetAll(ctx context.Context, filter gateway.PromptFilter) ([]models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Prompt
	for _, p := range f.byID {
		if filter.Visibility != "" && p.Visibility != filter.Visibility {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePrompts) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("prompt not found")
	}
	return &p, nil
}

func (f *fakePrompts) Create(ctx context.Context, prompt *models.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prompt.ID = primitive.NewObjectID()
	f.byID[prompt.ID.Hex()] = *prompt
	f.created = append(f.created, *prompt)
	return nil
}

func (f *fakePrompts) Update(ctx context.Context, id string, prompt *models.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id] = *prompt
	return nil
}

func (f *fakePrompts) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakePrompts) DeleteByRepoID(ctx context.Context, repoID uint) error { return nil }

func (f *fakePrompts) IncrementViewCount(ctx context.Context, promptID string) error { return nil }

func (f *fakePrompts) AdjustHearts(ctx context.Context, promptID string, delta int) error {
	return nil
}

func (f *fakePrompts) AdjustSaveCount(ctx context.Context, promptID string, delta int) error {
	return nil
}

func (f *fakePrompts) AdjustForkCount(ctx context.Context, promptID string, delta int) error {
	return nil
}

func (f *fakePrompts) AdjustCommentCount(ctx context.Context, promptID string, delta int) error {
	return nil
}

type fakeRepos struct {
	mu           sync.Mutex
	byID         map[uint]models.Repo
	promptCounts map[uint]int
}

func newFakeRepos(repos ...models.Repo) *fakeRepos {
	f := &fakeRepos{byID: make(map[uint]models.Repo), promptCounts: make(map[uint]int)}
	for _, r := range repos {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRepos) GetAll(userID uint) ([]models.Repo, error) { return nil, nil }

func (f *fakeRepos) GetByID(id uint) (*models.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("repo not found")
	}
	return &r, nil
}

func (f *fakeRepos) GetBySlug(slug string) (*models.Repo, error) { return nil, nil }
func (f *fakeRepos) Create(repo *models.Repo) error              { return nil }
func (f *fakeRepos) Update(repo *models.Repo) error              { return nil }
func (f *fakeRepos) Delete(id uint) error                        { return nil }

func (f *fakeRepos) AdjustStarCount(repoID uint, delta int) error { return nil }

func (f *fakeRepos) AdjustPromptCount(repoID uint, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.promptCounts[repoID] += delta
	return nil
}

type fakeSocial struct {
	mu          sync.Mutex
	heartCalls  int
	heartErr    error
	saveErr     error
	starred     map[uint]bool
	follows     map[uint]bool
	heartedIDs  []string
	savedIDs    []string
	followIDs   []uint
	starredIDs  []uint
	heartedNext gateway.ToggleAction
}

func newFakeSocial() *fakeSocial {
	return &fakeSocial{
		starred:     make(map[uint]bool),
		follows:     make(map[uint]bool),
		heartedNext: gateway.ToggleAdded,
	}
}

func (f *fakeSocial) ToggleHeart(userID uint, promptID string) (gateway.ToggleAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heartCalls++
	if f.heartErr != nil {
		return "", f.heartErr
	}
	return f.heartedNext, nil
}

func (f *fakeSocial) ToggleSave(userID uint, promptID string, collectionID uint) (gateway.ToggleAction, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return gateway.ToggleAdded, nil
}

func (f *fakeSocial) GetHeartedPromptIDs(userID uint) ([]string, error) { return f.heartedIDs, nil }
func (f *fakeSocial) GetSavedPromptIDs(userID uint) ([]string, error)   { return f.savedIDs, nil }

func (f *fakeSocial) StarRepo(repoID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.starred[repoID] {
		return fmt.Errorf("repo already starred")
	}
	f.starred[repoID] = true
	return nil
}

func (f *fakeSocial) UnstarRepo(repoID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.starred[repoID] {
		return fmt.Errorf("star not found")
	}
	delete(f.starred, repoID)
	return nil
}

func (f *fakeSocial) GetStarredRepos(userID uint) ([]uint, error) { return f.starredIDs, nil }

func (f *fakeSocial) Follow(followerID, followingID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.follows[followingID] = true
	return nil
}

func (f *fakeSocial) Unfollow(followerID, followingID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.follows, followingID)
	return nil
}

func (f *fakeSocial) IsFollowing(followerID, followingID uint) (bool, error) {
	return f.follows[followingID], nil
}

func (f *fakeSocial) GetFollowingIDs(userID uint) ([]uint, error) { return f.followIDs, nil }
func (f *fakeSocial) GetFollowerCount(userID uint) (int64, error) { return 0, nil }

type fakeComments struct {
	mu     sync.Mutex
	nextID uint
}

func (f *fakeComments) Create(comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	return nil
}

func (f *fakeComments) GetByID(id uint) (*models.Comment, error) { return nil, nil }
func (f *fakeComments) GetByPromptID(promptID string) ([]models.Comment, error) {
	return nil, nil
}
func (f *fakeComments) Update(comment *models.Comment) error { return nil }
func (f *fakeComments) Delete(id uint) error                 { return nil }

type fakeNotifications struct {
	mu      sync.Mutex
	created []models.Notification
}

func (f *fakeNotifications) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifications) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotifications) GetUnreadCount(recipientID uint) (int64, error) { return 0, nil }
func (f *fakeNotifications) MarkAsRead(notificationID uint) error           { return nil }
func (f *fakeNotifications) MarkAllAsRead(recipientID uint) error           { return nil }

// --- fixture ---

type fixture struct {
	session       *Session
	store         *store.Store
	prompts       *fakePrompts
	repos         *fakeRepos
	social        *fakeSocial
	notifications *fakeNotifications
	drafts        *drafts.Manager
}

func newFixture(repos ...models.Repo) *fixture {
	st := store.New(store.Options{})
	prompts := newFakePrompts()
	social := newFakeSocial()
	notifications := &fakeNotifications{}
	fr := newFakeRepos(repos...)
	dm := drafts.NewManager(kvstore.NewMemory(), nil)

	s := New(Options{
		Store:         st,
		Prompts:       prompts,
		Repos:         fr,
		Social:        social,
		Comments:      &fakeComments{},
		Notifications: notifications,
		Drafts:        dm,
		History:       pages.NewHistory(),
	})

	return &fixture{
		session:       s,
		store:         st,
		prompts:       prompts,
		repos:         fr,
		social:        social,
		notifications: notifications,
		drafts:        dm,
	}
}

func (f *fixture) signIn(userID uint) {
	f.store.Dispatch(store.SetUser{User: &models.User{ID: userID, Username: "alice"}})
}

func (f *fixture) cachePrompt(p models.Prompt) {
	f.store.Dispatch(store.AddPrompt{Prompt: p})
}

func cachedPrompt(owner uint) models.Prompt {
	return models.Prompt{
		ID:         primitive.NewObjectID(),
		RepoID:     1,
		UserID:     owner,
		Title:      "Cached",
		Content:    "...",
		Type:       models.PromptTypeText,
		Visibility: models.VisibilityPublic,
	}
}

// --- tests ---

func TestToggleHeartAddsOptimistically(t *testing.T) {
	f := newFixture()
	f.signIn(1)
	p := cachedPrompt(2)
	f.cachePrompt(p)

	err := f.session.ToggleHeart(context.Background(), p.ID.Hex())

	assert.NoError(t, err)
	st := f.store.State()
	assert.True(t, st.HasHeart(1, p.ID.Hex()))
	assert.Equal(t, 1, st.Prompts[0].Hearts)
	assert.Equal(t, 1, f.social.heartCalls)
}

func TestToggleHeartRollsBackOnFailure(t *testing.T) {
	f := newFixture()
	f.signIn(1)
	p := cachedPrompt(2)
	f.cachePrompt(p)
	f.social.heartErr = fmt.Errorf("network down")

	err := f.session.ToggleHeart(context.Background(), p.ID.Hex())

	assert.Error(t, err)
	st := f.store.State()
	assert.False(t, st.HasHeart(1, p.ID.Hex()))
	assert.Equal(t, 0, st.Prompts[0].Hearts)
}

func TestToggleHeartTwiceRemoves(t *testing.T) {
	f := newFixture()
	f.signIn(1)
	p := cachedPrompt(2)
	f.cachePrompt(p)

	assert.NoError(t, f.session.ToggleHeart(context.Background(), p.ID.Hex()))
	f.social.heartedNext = gateway.ToggleRemoved
	assert.NoError(t, f.session.ToggleHeart(context.Background(), p.ID.Hex()))

	st := f.store.State()
	assert.False(t, st.HasHeart(1, p.ID.Hex()))
	assert.Equal(t, 0, st.Prompts[0].Hearts)
}

func TestToggleHeartSignedOutIsNoOp(t *testing.T) {
	f := newFixture()
	p := cachedPrompt(2)
	f.cachePrompt(p)

	err := f.session.ToggleHeart(context.Background(), p.ID.Hex())

	assert.NoError(t, err)
	assert.Equal(t, 0, f.social.heartCalls)
}

func TestToggleStarLifecycle(t *testing.T) {
	f := newFixture()
	f.signIn(1)
	f.store.Dispatch(store.AddRepo{Repo: models.Repo{ID: 5, UserID: 2, Name: "Recipes"}})

	assert.NoError(t, f.session.ToggleStar(context.Background(), 5))
	st := f.store.State()
	assert.True(t, st.HasStarred(5))
	assert.Equal(t, 1, st.Repos[0].StarCount)
	assert.True(t, f.social.starred[5])

	assert.NoError(t, f.session.ToggleStar(context.Background(), 5))
	st = f.store.State()
	assert.False(t, st.HasStarred(5))
	assert.Equal(t, 0, st.Repos[0].StarCount)
	assert.False(t, f.social.starred[5])
}

func TestToggleFollowSelfIsNoOp(t *testing.T) {
	f := newFixture()
	f.signIn(1)

	err := f.session.ToggleFollow(context.Background(), 1)

	assert.NoError(t, err)
	assert.Empty(t, f.store.State().Follows)
	assert.Empty(t, f.social.follows)
}

func TestToggleFollow(t *testing.T) {
	f := newFixture()
	f.signIn(1)

	assert.NoError(t, f.session.ToggleFollow(context.Background(), 2))
	assert.True(t, f.store.State().IsFollowing(1, 2))
	assert.True(t, f.social.follows[2])

	assert.NoError(t, f.session.ToggleFollow(context.Background(), 2))
	assert.False(t, f.store.State().IsFollowing(1, 2))
}

func TestCreatePromptForcesPrivateInPrivateRepo(t *testing.T) {
	f := newFixture(models.Repo{ID: 1, UserID: 1, Visibility: models.VisibilityPrivate})
	f.signIn(1)

	created, err := f.session.CreatePrompt(context.Background(), models.Prompt{
		RepoID:     1,
		Title:      "Secret",
		Content:    "...",
		Type:       models.PromptTypeText,
		Visibility: models.VisibilityPublic,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, created.Visibility)
	assert.Equal(t, uint(1), created.UserID)
	assert.Equal(t, 1, f.repos.promptCounts[1])

	st := f.store.State()
	if assert.Len(t, st.Prompts, 1) {
		assert.Equal(t, models.VisibilityPrivate, st.Prompts[0].Visibility)
	}
}

func TestCreatePromptUnknownRepoFails(t *testing.T) {
	f := newFixture()
	f.signIn(1)

	_, err := f.session.CreatePrompt(context.Background(), models.Prompt{RepoID: 99, Title: "x"})

	assert.Error(t, err)
	assert.Empty(t, f.store.State().Prompts)
}

func TestForkPromptZeroesCountersAndLinksParent(t *testing.T) {
	f := newFixture(models.Repo{ID: 2, UserID: 1, Visibility: models.VisibilityPublic})
	f.signIn(1)

	original := cachedPrompt(2)
	original.Hearts = 10
	original.ViewCount = 50
	f.prompts.byID[original.ID.Hex()] = original
	f.cachePrompt(original)

	fork, err := f.session.ForkPrompt(context.Background(), original.ID.Hex(), 2)

	assert.NoError(t, err)
	assert.Equal(t, original.ID.Hex(), fork.ParentID)
	assert.Equal(t, uint(1), fork.UserID)
	assert.Equal(t, uint(2), fork.RepoID)
	assert.Equal(t, 0, fork.Hearts)
	assert.Equal(t, 0, fork.ViewCount)
	assert.NotEqual(t, original.ID, fork.ID)

	st := f.store.State()
	assert.Len(t, st.Prompts, 2)
	assert.Equal(t, 1, st.PromptByID(original.ID.Hex()).ForkCount)
}

func TestAddComment(t *testing.T) {
	f := newFixture()
	f.signIn(1)
	p := cachedPrompt(2)
	f.cachePrompt(p)

	comment, err := f.session.AddComment(context.Background(), p.ID.Hex(), "great prompt")

	assert.NoError(t, err)
	assert.NotZero(t, comment.ID)
	st := f.store.State()
	assert.Len(t, st.Comments, 1)
	assert.Equal(t, 1, st.Prompts[0].CommentCount)
}

func TestDraftLifecycle(t *testing.T) {
	f := newFixture(models.Repo{ID: 1, UserID: 1, Visibility: models.VisibilityPublic})
	f.signIn(1)

	err := f.session.SaveDraft(models.Draft{
		RepoID:     1,
		Title:      "WIP",
		Content:    "half written",
		Visibility: models.VisibilityPublic,
	})
	assert.NoError(t, err)

	draft := f.session.LoadDraft()
	if assert.NotNil(t, draft) {
		assert.Equal(t, "WIP", draft.Title)
		assert.NotEmpty(t, draft.ID)
	}
	assert.Len(t, f.store.State().Drafts, 1)

	created, err := f.session.PublishDraft(context.Background(), *draft)
	assert.NoError(t, err)
	assert.Equal(t, "WIP", created.Title)

	assert.Nil(t, f.session.LoadDraft())
	assert.Empty(t, f.store.State().Drafts)
	assert.Len(t, f.store.State().Prompts, 1)
}

func TestSaveDraftSignedOutFails(t *testing.T) {
	f := newFixture()

	err := f.session.SaveDraft(models.Draft{Title: "WIP"})

	assert.Error(t, err)
}

func TestHydrateLoadsSocialRows(t *testing.T) {
	f := newFixture()
	f.signIn(1)
	p := cachedPrompt(2)
	f.cachePrompt(p)

	f.social.heartedIDs = []string{p.ID.Hex()}
	f.social.savedIDs = []string{p.ID.Hex()}
	f.social.followIDs = []uint{2, 3}
	f.social.starredIDs = []uint{5}

	err := f.session.Hydrate(context.Background())

	assert.NoError(t, err)
	st := f.store.State()
	assert.True(t, st.HasHeart(1, p.ID.Hex()))
	assert.True(t, st.IsFollowing(1, 2))
	assert.True(t, st.HasStarred(5))
	assert.True(t, st.Prompts[0].IsHearted)
	assert.True(t, st.Prompts[0].IsSaved)
}

func TestLoadExploreFiltersPublic(t *testing.T) {
	f := newFixture()

	pub := cachedPrompt(2)
	f.prompts.byID[pub.ID.Hex()] = pub
	priv := cachedPrompt(2)
	priv.Visibility = models.VisibilityPrivate
	f.prompts.byID[priv.ID.Hex()] = priv

	err := f.session.LoadExplore(context.Background())

	assert.NoError(t, err)
	st := f.store.State()
	if assert.Len(t, st.Prompts, 1) {
		assert.Equal(t, pub.ID, st.Prompts[0].ID)
	}
}

func TestNavigation(t *testing.T) {
	f := newFixture()

	f.session.NavigateTo(pages.Explore{Query: "agents"})
	f.session.NavigateTo(pages.Repo{RepoID: 5, From: "explore"})
	assert.Equal(t, pages.Repo{RepoID: 5, From: "explore"}, f.session.CurrentPage())

	assert.Equal(t, pages.Explore{Query: "agents"}, f.session.Back())
	assert.Equal(t, pages.Home{}, f.session.Back())
	// at the start of history Back falls back to Home
	assert.Equal(t, pages.Home{}, f.session.Back())
}
