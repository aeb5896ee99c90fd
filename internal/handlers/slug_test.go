package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":             "hello-world",
		"  Chain of Thought!  ":   "chain-of-thought",
		"GPT-4 / Claude prompts":  "gpt-4-claude-prompts",
		"---":                     "",
		"Already-slugged":         "already-slugged",
		"Ünïcode gets stripped ü": "n-code-gets-stripped",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{"AI", "ai", " Coding ", "", "coding", "agents"})
	assert.Equal(t, []string{"ai", "coding", "agents"}, got)
}

func TestValidateTags(t *testing.T) {
	assert.NoError(t, validateTags([]string{"a", "b", "A"}))

	tooMany := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	assert.Error(t, validateTags(tooMany))

	// duplicates collapse before the limit applies
	dup := append([]string{}, tooMany...)
	dup[10] = "A"
	assert.NoError(t, validateTags(dup))
}
