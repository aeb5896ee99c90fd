package pages

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Page{
		Home{},
		Explore{},
		Explore{Query: "chain of thought"},
		Repos{},
		Repos{UserID: 42},
		MyRepo{UserID: 7},
		MyPrompts{UserID: 7},
		Repo{RepoID: 5},
		Repo{RepoID: 5, From: "explore"},
		Create{},
		Create{RepoID: 3},
		Prompt{PromptID: "665f1c2ab1e8f00012a4d9c3"},
		Prompt{PromptID: "665f1c2ab1e8f00012a4d9c3", From: "repo", RepoID: 5},
		Profile{UserID: 9},
		Profile{UserID: 9, Tab: "prompts"},
		Settings{},
		About{},
		Terms{},
		Privacy{},
		Admin{},
	}

	for _, p := range cases {
		loc := Encode(p)
		got := DecodeLocation(loc)
		assert.Equal(t, p, got, "round trip through %s", loc.String())
	}
}

func TestEncodeOmitsUnsetOptionalFields(t *testing.T) {
	loc := Encode(Repo{RepoID: 5})
	assert.Equal(t, "/repo/5", loc.String())

	loc = Encode(Repo{RepoID: 5, From: "explore"})
	assert.Equal(t, "/repo/5?from=explore", loc.String())

	loc = Encode(Explore{})
	assert.Equal(t, "/explore", loc.String())
}

func TestEncodeDropsEditingPrompt(t *testing.T) {
	editing := &models.Prompt{Title: "work in progress"}
	loc := Encode(Create{RepoID: 3, Editing: editing})

	assert.Equal(t, "/create?repoId=3", loc.String())

	got := DecodeLocation(loc)
	assert.Equal(t, Create{RepoID: 3}, got)
}

func TestDecodeUnknownPathFallsBackToHome(t *testing.T) {
	cases := []string{
		"/nope",
		"/repo",
		"/repo/abc",
		"/repo/0",
		"/repo/5/extra",
		"/prompt",
		"/prompt/x/y",
		"/profile/notanumber",
		"/explore/deeper",
		"/settings/x",
	}
	for _, path := range cases {
		got := Decode(path, url.Values{})
		assert.Equal(t, Home{}, got, "path %s", path)
	}
}

func TestDecodePathWinsOverQuery(t *testing.T) {
	q := url.Values{}
	q.Set("repoId", "99")

	got := Decode("/repo/5", q)

	assert.Equal(t, Repo{RepoID: 5}, got)
}

func TestDecodeIgnoresUnknownQueryParams(t *testing.T) {
	q := url.Values{}
	q.Set("utm_source", "newsletter")
	q.Set("q", "agents")

	got := Decode("/explore", q)

	assert.Equal(t, Explore{Query: "agents"}, got)
}

func TestParseLocation(t *testing.T) {
	loc := ParseLocation("/prompt/abc?from=repo&repoId=5")
	assert.Equal(t, "/prompt/abc", loc.Path)
	assert.Equal(t, "repo", loc.Query.Get("from"))
	assert.Equal(t, "5", loc.Query.Get("repoId"))

	loc = ParseLocation("/repos")
	assert.Equal(t, "/repos", loc.Path)
	assert.Empty(t, loc.Query)

	// a malformed query never fails the parse
	loc = ParseLocation("/repos?%zz")
	assert.Equal(t, "/repos", loc.Path)
	assert.Empty(t, loc.Query)
}

func TestDecodeRootVariants(t *testing.T) {
	assert.Equal(t, Home{}, Decode("/", url.Values{}))
	assert.Equal(t, Home{}, Decode("", url.Values{}))
	assert.Equal(t, Home{}, Decode("//", url.Values{}))
}
