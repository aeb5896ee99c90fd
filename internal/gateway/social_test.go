package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Repo{},
		&models.Heart{},
		&models.Save{},
		&models.Follow{},
		&models.RepoStar{},
		&models.Collection{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestToggleHeartAddsThenRemoves(t *testing.T) {
	g := NewPostgresSocialGateway(setupTestDB(t))

	action, err := g.ToggleHeart(1, "abc123")
	assert.NoError(t, err)
	assert.Equal(t, ToggleAdded, action)

	ids, err := g.GetHeartedPromptIDs(1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"abc123"}, ids)

	action, err = g.ToggleHeart(1, "abc123")
	assert.NoError(t, err)
	assert.Equal(t, ToggleRemoved, action)

	ids, err = g.GetHeartedPromptIDs(1)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleHeartIsPerUser(t *testing.T) {
	g := NewPostgresSocialGateway(setupTestDB(t))

	_, err := g.ToggleHeart(1, "abc123")
	assert.NoError(t, err)

	action, err := g.ToggleHeart(2, "abc123")
	assert.NoError(t, err)
	assert.Equal(t, ToggleAdded, action)
}

func TestToggleSaveRecordsCollection(t *testing.T) {
	db := setupTestDB(t)
	g := NewPostgresSocialGateway(db)

	action, err := g.ToggleSave(1, "abc123", 7)
	assert.NoError(t, err)
	assert.Equal(t, ToggleAdded, action)

	var save models.Save
	assert.NoError(t, db.First(&save).Error)
	assert.Equal(t, uint(7), save.CollectionID)

	action, err = g.ToggleSave(1, "abc123", 0)
	assert.NoError(t, err)
	assert.Equal(t, ToggleRemoved, action)
}

func TestStarRepo(t *testing.T) {
	g := NewPostgresSocialGateway(setupTestDB(t))

	assert.NoError(t, g.StarRepo(5, 1))

	// starring twice is an error, not a toggle
	err := g.StarRepo(5, 1)
	assert.Error(t, err)

	ids, err := g.GetStarredRepos(1)
	assert.NoError(t, err)
	assert.Equal(t, []uint{5}, ids)

	assert.NoError(t, g.UnstarRepo(5, 1))
	assert.Error(t, g.UnstarRepo(5, 1))
}

func TestFollow(t *testing.T) {
	g := NewPostgresSocialGateway(setupTestDB(t))

	assert.Error(t, g.Follow(1, 1))

	assert.NoError(t, g.Follow(1, 2))
	assert.Error(t, g.Follow(1, 2))

	following, err := g.IsFollowing(1, 2)
	assert.NoError(t, err)
	assert.True(t, following)

	ids, err := g.GetFollowingIDs(1)
	assert.NoError(t, err)
	assert.Equal(t, []uint{2}, ids)

	count, err := g.GetFollowerCount(2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, g.Unfollow(1, 2))
	assert.Error(t, g.Unfollow(1, 2))

	following, err = g.IsFollowing(1, 2)
	assert.NoError(t, err)
	assert.False(t, following)
}
