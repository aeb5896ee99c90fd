package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(key string) (string, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeKV) Set(key, value string) {
	f.data[key] = value
}

type fakeSession struct {
	user     *models.User
	onChange func(*models.User)
}

func (f *fakeSession) CurrentUser() *models.User {
	return f.user
}

func (f *fakeSession) OnChange(fn func(*models.User)) func() {
	f.onChange = fn
	return func() { f.onChange = nil }
}

func TestNewSeedsThemeFromStorage(t *testing.T) {
	kv := newFakeKV()
	kv.Set("theme", ThemeDark)

	s := New(Options{Theme: kv})

	assert.Equal(t, ThemeDark, s.State().Theme)
}

func TestNewDefaultsWithoutStorage(t *testing.T) {
	s := New(Options{})

	st := s.State()
	assert.Equal(t, ThemeLight, st.Theme)
	assert.Nil(t, st.User)
}

func TestSetThemePersists(t *testing.T) {
	kv := newFakeKV()
	s := New(Options{Theme: kv})

	s.Dispatch(SetTheme{Theme: ThemeDark})

	assert.Equal(t, ThemeDark, s.State().Theme)
	v, ok := kv.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, v)
}

func TestNewSeedsUserFromSession(t *testing.T) {
	sess := &fakeSession{user: testUser(1)}

	s := New(Options{Session: sess})

	assert.Equal(t, uint(1), s.State().User.ID)
}

func TestAuthChangeDispatchesSetUser(t *testing.T) {
	sess := &fakeSession{}
	s := New(Options{Session: sess})

	sess.onChange(testUser(3))
	assert.Equal(t, uint(3), s.State().User.ID)

	sess.onChange(nil)
	assert.Nil(t, s.State().User)
}

func TestCloseUnsubscribesFromAuth(t *testing.T) {
	sess := &fakeSession{}
	s := New(Options{Session: sess})

	s.Close()

	assert.Nil(t, sess.onChange)
}

func TestSubscribeReceivesEveryDispatch(t *testing.T) {
	s := New(Options{})

	var seen []string
	unsub := s.Subscribe(func(st State) {
		seen = append(seen, st.Theme)
	})

	s.Dispatch(SetTheme{Theme: ThemeDark})
	s.Dispatch(SetTheme{Theme: ThemeLight})
	unsub()
	s.Dispatch(SetTheme{Theme: ThemeDark})

	assert.Equal(t, []string{ThemeDark, ThemeLight}, seen)
}

func TestDispatchOrderIsSerial(t *testing.T) {
	s := New(Options{})
	s.Dispatch(SetUser{User: testUser(1)})

	p := testPrompt(2)
	s.Dispatch(LoadPrompts{Prompts: []models.Prompt{p}})
	s.Dispatch(HeartPrompt{PromptID: p.ID.Hex()})
	s.Dispatch(HeartPrompt{PromptID: p.ID.Hex()})

	st := s.State()
	assert.Len(t, st.Hearts, 1)
	assert.Equal(t, 1, st.Prompts[0].Hearts)
}
