package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// RepoHandler handles HTTP requests related to repos
type RepoHandler struct {
	repos         gateway.RepoGateway
	prompts       gateway.PromptGateway
	social        gateway.SocialGateway
	notifications gateway.NotificationGateway
	profiles      gateway.ProfileGateway
}

// NewRepoHandler creates a new RepoHandler
func NewRepoHandler(
	repos gateway.RepoGateway,
	prompts gateway.PromptGateway,
	social gateway.SocialGateway,
	notifications gateway.NotificationGateway,
	profiles gateway.ProfileGateway,
) *RepoHandler {
	return &RepoHandler{
		repos:         repos,
		prompts:       prompts,
		social:        social,
		notifications: notifications,
		profiles:      profiles,
	}
}

// RegisterRepoRoutes registers repo-related routes
func (h *RepoHandler) RegisterRepoRoutes(g *echo.Group) {
	g.GET("/repos", h.ListRepos)
	g.GET("/repos/:repo_id", h.GetRepo)
	g.GET("/repos/:repo_id/prompts", h.GetRepoPrompts)
	g.POST("/repos", h.CreateRepo)
	g.PUT("/repos/:repo_id", h.UpdateRepo)
	g.DELETE("/repos/:repo_id", h.DeleteRepo)
	g.POST("/repos/:repo_id/star", h.StarRepo)
	g.DELETE("/repos/:repo_id/star", h.UnstarRepo)
	g.GET("/repos/starred", h.GetStarredRepos)
}

// ListRepos returns repos, optionally restricted to one owner
func (h *RepoHandler) ListRepos(c echo.Context) error {
	var userID uint
	if raw := c.QueryParam("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
		}
		userID = uint(id)
	}

	repos, err := h.repos.GetAll(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Private repos are only listed for their owner
	currentUserID := getUserIDFromContext(c)
	visible := make([]models.Repo, 0, len(repos))
	for _, r := range repos {
		if r.Visibility == models.VisibilityPrivate && r.UserID != currentUserID {
			continue
		}
		visible = append(visible, r)
	}
	return c.JSON(http.StatusOK, visible)
}

// GetRepo retrieves a single repo
func (h *RepoHandler) GetRepo(c echo.Context) error {
	repo, err := h.findRepo(c)
	if err != nil {
		return err
	}
	if repo.Visibility == models.VisibilityPrivate && repo.UserID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Repo not found")
	}
	return c.JSON(http.StatusOK, repo)
}

// GetRepoPrompts retrieves the prompts belonging to a repo
func (h *RepoHandler) GetRepoPrompts(c echo.Context) error {
	repo, err := h.findRepo(c)
	if err != nil {
		return err
	}
	currentUserID := getUserIDFromContext(c)
	if repo.Visibility == models.VisibilityPrivate && repo.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusNotFound, "Repo not found")
	}

	filter := gateway.PromptFilter{RepoID: repo.ID}
	if repo.UserID != currentUserID {
		filter.Visibility = models.VisibilityPublic
	}
	prompts, err := h.prompts.GetAll(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prompts)
}

// CreateRepo creates a repo owned by the caller
func (h *RepoHandler) CreateRepo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateRepoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	repo := &models.Repo{
		UserID:      currentUserID,
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: req.Description,
		Visibility:  req.Visibility,
		Tags:        strings.Join(normalizeTags(req.Tags), ","),
	}
	if err := h.repos.Create(repo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, repo)
}

// UpdateRepo updates a repo owned by the caller. Making a repo private
// forces its prompts private.
func (h *RepoHandler) UpdateRepo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	repo, err := h.findRepo(c)
	if err != nil {
		return err
	}
	if repo.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your repo")
	}

	var req models.UpdateRepoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name != "" {
		repo.Name = req.Name
		repo.Slug = slugify(req.Name)
	}
	if req.Description != "" {
		repo.Description = req.Description
	}
	if req.Tags != nil {
		repo.Tags = strings.Join(normalizeTags(req.Tags), ",")
	}
	wentPrivate := false
	if req.Visibility != "" && req.Visibility != repo.Visibility {
		repo.Visibility = req.Visibility
		wentPrivate = req.Visibility == models.VisibilityPrivate
	}

	if err := h.repos.Update(repo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if wentPrivate {
		// A prompt cannot stay public inside a private repo
		prompts, err := h.prompts.GetAll(c.Request().Context(), gateway.PromptFilter{RepoID: repo.ID})
		if err == nil {
			for i := range prompts {
				if prompts[i].Visibility != models.VisibilityPrivate {
					prompts[i].Visibility = models.VisibilityPrivate
					if err := h.prompts.Update(c.Request().Context(), prompts[i].ID.Hex(), &prompts[i]); err != nil {
						c.Logger().Warnf("failed to privatize prompt %s: %v", prompts[i].ID.Hex(), err)
					}
				}
			}
		}
	}
	return c.JSON(http.StatusOK, repo)
}

// DeleteRepo deletes a repo owned by the caller along with its prompts
func (h *RepoHandler) DeleteRepo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	repo, err := h.findRepo(c)
	if err != nil {
		return err
	}
	if repo.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your repo")
	}

	if err := h.repos.Delete(repo.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.prompts.DeleteByRepoID(c.Request().Context(), repo.ID); err != nil {
		c.Logger().Warnf("failed to delete prompts of repo %d: %v", repo.ID, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StarRepo stars a repo for the caller
func (h *RepoHandler) StarRepo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	repo, err := h.findRepo(c)
	if err != nil {
		return err
	}

	if err := h.social.StarRepo(repo.ID, currentUserID); err != nil {
		if err.Error() == "repo already starred" {
			return echo.NewHTTPError(http.StatusConflict, "Repo already starred")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.repos.AdjustStarCount(repo.ID, 1); err != nil {
		c.Logger().Warnf("failed to adjust star count for repo %d: %v", repo.ID, err)
	}

	if repo.UserID != currentUserID {
		if actor, err := h.profiles.GetProfile(currentUserID); err == nil {
			notification := &models.Notification{
				Type:        models.NotificationRepoStarred,
				ActorID:     currentUserID,
				RecipientID: repo.UserID,
				TargetID:    strconv.FormatUint(uint64(repo.ID), 10),
				TargetType:  "repo",
				Title:       "Repo starred",
				Message:     actor.Username + " starred your repo \"" + repo.Name + "\"",
			}
			if err := h.notifications.Create(notification); err != nil {
				c.Logger().Warnf("failed to create star notification: %v", err)
			}
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"action": gateway.ToggleAdded})
}

// UnstarRepo removes the caller's star from a repo
func (h *RepoHandler) UnstarRepo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	repo, err := h.findRepo(c)
	if err != nil {
		return err
	}

	if err := h.social.UnstarRepo(repo.ID, currentUserID); err != nil {
		if err.Error() == "star not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Star not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.repos.AdjustStarCount(repo.ID, -1); err != nil {
		c.Logger().Warnf("failed to adjust star count for repo %d: %v", repo.ID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"action": gateway.ToggleRemoved})
}

// GetStarredRepos returns the IDs of the repos the caller has starred
func (h *RepoHandler) GetStarredRepos(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ids, err := h.social.GetStarredRepos(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"repo_ids": ids})
}

func (h *RepoHandler) findRepo(c echo.Context) (*models.Repo, error) {
	repoID, err := strconv.ParseUint(c.Param("repo_id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid repo ID")
	}
	repo, err := h.repos.GetByID(uint(repoID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Repo not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return repo, nil
}
