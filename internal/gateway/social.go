package gateway

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// ToggleAction is the authoritative verdict of a toggle call
type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

// SocialGateway defines the interface for heart/save/star/follow operations
type SocialGateway interface {
	ToggleHeart(userID uint, promptID string) (ToggleAction, error)
	ToggleSave(userID uint, promptID string, collectionID uint) (ToggleAction, error)
	GetHeartedPromptIDs(userID uint) ([]string, error)
	GetSavedPromptIDs(userID uint) ([]string, error)
	StarRepo(repoID, userID uint) error
	UnstarRepo(repoID, userID uint) error
	GetStarredRepos(userID uint) ([]uint, error)
	Follow(followerID, followingID uint) error
	Unfollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowingIDs(userID uint) ([]uint, error)
	GetFollowerCount(userID uint) (int64, error)
}

// PostgresSocialGateway implements SocialGateway for PostgreSQL
type PostgresSocialGateway struct {
	db *gorm.DB
}

// NewPostgresSocialGateway creates a new PostgresSocialGateway
func NewPostgresSocialGateway(db *gorm.DB) *PostgresSocialGateway {
	return &PostgresSocialGateway{db: db}
}

// ToggleHeart adds a heart row for (userID, promptID) or removes the
// existing one, and reports which of the two actually happened.
func (g *PostgresSocialGateway) ToggleHeart(userID uint, promptID string) (ToggleAction, error) {
	var count int64
	if err := g.db.Model(&models.Heart{}).Where("user_id = ? AND prompt_id = ?", userID, promptID).Count(&count).Error; err != nil {
		return "", err
	}

	if count > 0 {
		res := g.db.Where("user_id = ? AND prompt_id = ?", userID, promptID).Delete(&models.Heart{})
		if res.Error != nil {
			return "", res.Error
		}
		return ToggleRemoved, nil
	}

	heart := &models.Heart{UserID: userID, PromptID: promptID}
	if err := g.db.Create(heart).Error; err != nil {
		return "", err
	}
	return ToggleAdded, nil
}

// ToggleSave adds a save row for (userID, promptID) or removes the existing
// one. collectionID is only recorded on add; 0 means no collection.
func (g *PostgresSocialGateway) ToggleSave(userID uint, promptID string, collectionID uint) (ToggleAction, error) {
	var count int64
	if err := g.db.Model(&models.Save{}).Where("user_id = ? AND prompt_id = ?", userID, promptID).Count(&count).Error; err != nil {
		return "", err
	}

	if count > 0 {
		res := g.db.Where("user_id = ? AND prompt_id = ?", userID, promptID).Delete(&models.Save{})
		if res.Error != nil {
			return "", res.Error
		}
		return ToggleRemoved, nil
	}

	save := &models.Save{UserID: userID, PromptID: promptID, CollectionID: collectionID}
	if err := g.db.Create(save).Error; err != nil {
		return "", err
	}
	return ToggleAdded, nil
}

// GetHeartedPromptIDs retrieves the IDs of every prompt the user has hearted
func (g *PostgresSocialGateway) GetHeartedPromptIDs(userID uint) ([]string, error) {
	var ids []string
	err := g.db.Model(&models.Heart{}).Where("user_id = ?", userID).Pluck("prompt_id", &ids).Error
	return ids, err
}

// GetSavedPromptIDs retrieves the IDs of every prompt the user has saved
func (g *PostgresSocialGateway) GetSavedPromptIDs(userID uint) ([]string, error) {
	var ids []string
	err := g.db.Model(&models.Save{}).Where("user_id = ?", userID).Pluck("prompt_id", &ids).Error
	return ids, err
}

// StarRepo creates a star row; starring an already-starred repo is an error
func (g *PostgresSocialGateway) StarRepo(repoID, userID uint) error {
	var count int64
	if err := g.db.Model(&models.RepoStar{}).Where("repo_id = ? AND user_id = ?", repoID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("repo already starred")
	}
	return g.db.Create(&models.RepoStar{RepoID: repoID, UserID: userID}).Error
}

// UnstarRepo deletes the star row for (repoID, userID)
func (g *PostgresSocialGateway) UnstarRepo(repoID, userID uint) error {
	res := g.db.Where("repo_id = ? AND user_id = ?", repoID, userID).Delete(&models.RepoStar{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("star not found")
	}
	return nil
}

// GetStarredRepos retrieves the IDs of every repo the user has starred
func (g *PostgresSocialGateway) GetStarredRepos(userID uint) ([]uint, error) {
	var ids []uint
	err := g.db.Model(&models.RepoStar{}).Where("user_id = ?", userID).Pluck("repo_id", &ids).Error
	return ids, err
}

// Follow creates a follow row; self-follow and duplicates are errors
func (g *PostgresSocialGateway) Follow(followerID, followingID uint) error {
	if followerID == followingID {
		return fmt.Errorf("cannot follow yourself")
	}
	following, err := g.IsFollowing(followerID, followingID)
	if err != nil {
		return err
	}
	if following {
		return fmt.Errorf("already following")
	}
	return g.db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error
}

// Unfollow deletes the follow row for (followerID, followingID)
func (g *PostgresSocialGateway) Unfollow(followerID, followingID uint) error {
	res := g.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

// IsFollowing reports whether a follow row exists
func (g *PostgresSocialGateway) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := g.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowingIDs retrieves the IDs of every user the given user follows
func (g *PostgresSocialGateway) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := g.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}

// GetFollowerCount retrieves the number of followers of a user
func (g *PostgresSocialGateway) GetFollowerCount(userID uint) (int64, error) {
	var count int64
	err := g.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}
