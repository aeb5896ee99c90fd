package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

func createTestRepo(t *testing.T, g *PostgresRepoGateway, userID uint, name, slug string) *models.Repo {
	t.Helper()
	repo := &models.Repo{
		UserID:     userID,
		Name:       name,
		Slug:       slug,
		Visibility: models.VisibilityPublic,
	}
	assert.NoError(t, g.Create(repo))
	return repo
}

func TestRepoCRUD(t *testing.T) {
	g := NewPostgresRepoGateway(setupTestDB(t))

	repo := createTestRepo(t, g, 1, "Agent Recipes", "agent-recipes")
	assert.NotZero(t, repo.ID)

	got, err := g.GetByID(repo.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Agent Recipes", got.Name)

	got, err = g.GetBySlug("agent-recipes")
	assert.NoError(t, err)
	assert.Equal(t, repo.ID, got.ID)

	got.Description = "Patterns for agents"
	assert.NoError(t, g.Update(got))

	got, err = g.GetByID(repo.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Patterns for agents", got.Description)

	assert.NoError(t, g.Delete(repo.ID))
	assert.Error(t, g.Delete(repo.ID))

	_, err = g.GetByID(repo.ID)
	assert.Error(t, err)
}

func TestRepoGetAllByOwner(t *testing.T) {
	g := NewPostgresRepoGateway(setupTestDB(t))

	createTestRepo(t, g, 1, "Mine", "mine")
	createTestRepo(t, g, 2, "Theirs", "theirs")

	repos, err := g.GetAll(1)
	assert.NoError(t, err)
	if assert.Len(t, repos, 1) {
		assert.Equal(t, "Mine", repos[0].Name)
	}

	repos, err = g.GetAll(0)
	assert.NoError(t, err)
	assert.Len(t, repos, 2)
}

func TestRepoAdjustCounters(t *testing.T) {
	g := NewPostgresRepoGateway(setupTestDB(t))
	repo := createTestRepo(t, g, 1, "Mine", "mine")

	assert.NoError(t, g.AdjustStarCount(repo.ID, 1))
	assert.NoError(t, g.AdjustStarCount(repo.ID, 1))
	assert.NoError(t, g.AdjustPromptCount(repo.ID, 3))

	got, err := g.GetByID(repo.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, got.StarCount)
	assert.Equal(t, 3, got.PromptCount)

	assert.NoError(t, g.AdjustStarCount(repo.ID, -1))
	got, _ = g.GetByID(repo.ID)
	assert.Equal(t, 1, got.StarCount)
}
