package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryStartsAtHome(t *testing.T) {
	h := NewHistory()

	assert.Equal(t, Home{}, h.Current())
	_, ok := h.Back()
	assert.False(t, ok)
}

func TestBackRestoresPriorPage(t *testing.T) {
	h := NewHistory()
	h.Push(Explore{Query: "agents"})
	h.Push(Repo{RepoID: 5, From: "explore"})

	p, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, Explore{Query: "agents"}, p)

	p, ok = h.Back()
	assert.True(t, ok)
	assert.Equal(t, Home{}, p)

	_, ok = h.Back()
	assert.False(t, ok)
}

func TestBackPreservesProvenance(t *testing.T) {
	h := NewHistory()
	h.Push(Repo{RepoID: 5, From: "explore"})
	h.Push(Prompt{PromptID: "abc", From: "repo", RepoID: 5})

	p, ok := h.Back()
	assert.True(t, ok)
	// provenance carried in the query survives the URL round trip
	assert.Equal(t, Repo{RepoID: 5, From: "explore"}, p)
}

func TestForwardAfterBack(t *testing.T) {
	h := NewHistory()
	h.Push(Explore{})

	_, _ = h.Back()
	p, ok := h.Forward()

	assert.True(t, ok)
	assert.Equal(t, Explore{}, p)

	_, ok = h.Forward()
	assert.False(t, ok)
}

func TestPushDiscardsForwardEntries(t *testing.T) {
	h := NewHistory()
	h.Push(Explore{})
	h.Push(Settings{})

	_, _ = h.Back()
	h.Push(Repo{RepoID: 1})

	_, ok := h.Forward()
	assert.False(t, ok)
	assert.Equal(t, Repo{RepoID: 1}, h.Current())
}

func TestReplaceOverwritesCurrentEntry(t *testing.T) {
	h := NewHistory()
	h.Push(Explore{})
	h.Replace(Explore{Query: "refined"})

	assert.Equal(t, Explore{Query: "refined"}, h.Current())

	p, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, Home{}, p)
}

func TestListenerFiresOnlyOnBackForward(t *testing.T) {
	h := NewHistory()

	var fired []Page
	h.SetListener(func(p Page) {
		fired = append(fired, p)
	})

	h.Push(Explore{})
	h.Push(Settings{})
	h.Replace(About{})
	assert.Empty(t, fired)

	_, _ = h.Back()
	_, _ = h.Forward()

	assert.Equal(t, []Page{Explore{}, About{}}, fired)
}

func TestCurrentLocationIsEncoded(t *testing.T) {
	h := NewHistory()
	h.Push(Prompt{PromptID: "abc", From: "repo"})

	loc := h.CurrentLocation()
	assert.Equal(t, "/prompt/abc?from=repo", loc.String())
}
