package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// PromptHandler handles HTTP requests related to prompts
type PromptHandler struct {
	prompts  gateway.PromptGateway
	repos    gateway.RepoGateway
	social   gateway.SocialGateway
	profiles gateway.ProfileGateway
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(
	prompts gateway.PromptGateway,
	repos gateway.RepoGateway,
	social gateway.SocialGateway,
	profiles gateway.ProfileGateway,
) *PromptHandler {
	return &PromptHandler{
		prompts:  prompts,
		repos:    repos,
		social:   social,
		profiles: profiles,
	}
}

// RegisterPromptRoutes registers prompt-related routes
func (h *PromptHandler) RegisterPromptRoutes(g *echo.Group) {
	g.GET("/prompts", h.ListPrompts)
	g.GET("/prompts/:prompt_id", h.GetPrompt)
	g.POST("/prompts", h.CreatePrompt)
	g.PUT("/prompts/:prompt_id", h.UpdatePrompt)
	g.DELETE("/prompts/:prompt_id", h.DeletePrompt)
	g.POST("/prompts/:prompt_id/fork", h.ForkPrompt)
}

// EnrichedPrompt is a prompt with author info and user-specific flags
type EnrichedPrompt struct {
	models.Prompt
	Author models.UserCompact `json:"author"`
}

// ListPrompts returns public prompts matching the query parameters,
// enriched with the caller's hearted/saved flags.
func (h *PromptHandler) ListPrompts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	filter := gateway.PromptFilter{
		Visibility: models.VisibilityPublic,
		Query:      c.QueryParam("q"),
		Category:   c.QueryParam("category"),
		SortBy:     c.QueryParam("sort"),
		Skip:       int64((page - 1) * limit),
		Limit:      int64(limit),
	}
	if types := c.QueryParam("types"); types != "" {
		filter.Types = strings.Split(types, ",")
	}
	if tags := c.QueryParam("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	if repoID, err := strconv.ParseUint(c.QueryParam("repo_id"), 10, 32); err == nil {
		filter.RepoID = uint(repoID)
	}

	prompts, err := h.prompts.GetAll(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrich(prompts, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"prompts": enriched,
		"page":    page,
		"limit":   limit,
	})
}

// GetPrompt retrieves a single prompt and counts the view
func (h *PromptHandler) GetPrompt(c echo.Context) error {
	promptID := c.Param("prompt_id")

	prompt, err := h.prompts.GetByID(c.Request().Context(), promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}

	// Private prompts are only visible to their owner
	currentUserID := getUserIDFromContext(c)
	if prompt.Visibility == models.VisibilityPrivate && prompt.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}

	go h.prompts.IncrementViewCount(context.Background(), promptID)

	enriched, err := h.enrich([]models.Prompt{*prompt}, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, enriched[0])
}

// CreatePrompt creates a prompt inside one of the caller's repos. A private
// repo forces the prompt private.
func (h *PromptHandler) CreatePrompt(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validateTags(req.Tags); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	repo, err := h.repos.GetByID(req.RepoID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Repo not found")
	}
	if repo.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your repo")
	}

	visibility := req.Visibility
	if repo.Visibility == models.VisibilityPrivate {
		visibility = models.VisibilityPrivate
	}

	prompt := &models.Prompt{
		RepoID:      req.RepoID,
		UserID:      currentUserID,
		Title:       req.Title,
		Slug:        slugify(req.Title),
		Description: req.Description,
		Content:     req.Content,
		Type:        req.Type,
		Tags:        normalizeTags(req.Tags),
		Category:    req.Category,
		ModelCompat: req.ModelCompat,
		Visibility:  visibility,
		Version:     "1.0",
	}

	if err := h.prompts.Create(c.Request().Context(), prompt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.repos.AdjustPromptCount(req.RepoID, 1); err != nil {
		c.Logger().Warnf("failed to adjust prompt count for repo %d: %v", req.RepoID, err)
	}

	return c.JSON(http.StatusCreated, prompt)
}

// UpdatePrompt updates a prompt owned by the caller
func (h *PromptHandler) UpdatePrompt(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	promptID := c.Param("prompt_id")

	prompt, err := h.prompts.GetByID(c.Request().Context(), promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}
	if prompt.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your prompt")
	}

	var req models.UpdatePromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validateTags(req.Tags); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Title != "" {
		prompt.Title = req.Title
		prompt.Slug = slugify(req.Title)
	}
	if req.Description != "" {
		prompt.Description = req.Description
	}
	if req.Content != "" {
		prompt.Content = req.Content
	}
	if req.Tags != nil {
		prompt.Tags = normalizeTags(req.Tags)
	}
	if req.Category != "" {
		prompt.Category = req.Category
	}
	if req.ModelCompat != nil {
		prompt.ModelCompat = req.ModelCompat
	}
	if req.Visibility != "" {
		repo, err := h.repos.GetByID(prompt.RepoID)
		if err == nil && repo.Visibility == models.VisibilityPrivate {
			prompt.Visibility = models.VisibilityPrivate
		} else {
			prompt.Visibility = req.Visibility
		}
	}
	if req.Version != "" {
		prompt.Version = req.Version
	}

	if err := h.prompts.Update(c.Request().Context(), promptID, prompt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prompt)
}

// DeletePrompt deletes a prompt owned by the caller
func (h *PromptHandler) DeletePrompt(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	promptID := c.Param("prompt_id")

	prompt, err := h.prompts.GetByID(c.Request().Context(), promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}
	if prompt.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your prompt")
	}

	if err := h.prompts.Delete(c.Request().Context(), promptID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.repos.AdjustPromptCount(prompt.RepoID, -1); err != nil {
		c.Logger().Warnf("failed to adjust prompt count for repo %d: %v", prompt.RepoID, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ForkPromptRequest defines the request body for forking a prompt
type ForkPromptRequest struct {
	RepoID uint `json:"repo_id" validate:"required"`
}

// ForkPrompt copies a prompt with attribution into one of the caller's repos
func (h *PromptHandler) ForkPrompt(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	promptID := c.Param("prompt_id")

	var req ForkPromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	original, err := h.prompts.GetByID(c.Request().Context(), promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}

	repo, err := h.repos.GetByID(req.RepoID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Repo not found")
	}
	if repo.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your repo")
	}

	fork := *original
	fork.RepoID = req.RepoID
	fork.UserID = currentUserID
	fork.ParentID = promptID
	fork.Hearts = 0
	fork.SaveCount = 0
	fork.ForkCount = 0
	fork.CommentCount = 0
	fork.ViewCount = 0
	if repo.Visibility == models.VisibilityPrivate {
		fork.Visibility = models.VisibilityPrivate
	}

	if err := h.prompts.Create(c.Request().Context(), &fork); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	go h.prompts.AdjustForkCount(context.Background(), promptID, 1)
	if err := h.repos.AdjustPromptCount(req.RepoID, 1); err != nil {
		c.Logger().Warnf("failed to adjust prompt count for repo %d: %v", req.RepoID, err)
	}

	return c.JSON(http.StatusCreated, fork)
}

func (h *PromptHandler) enrich(prompts []models.Prompt, currentUserID uint) ([]EnrichedPrompt, error) {
	heartedSet := make(map[string]bool)
	savedSet := make(map[string]bool)
	if currentUserID != 0 {
		heartedIDs, err := h.social.GetHeartedPromptIDs(currentUserID)
		if err != nil {
			return nil, err
		}
		for _, id := range heartedIDs {
			heartedSet[id] = true
		}
		savedIDs, err := h.social.GetSavedPromptIDs(currentUserID)
		if err != nil {
			return nil, err
		}
		for _, id := range savedIDs {
			savedSet[id] = true
		}
	}

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedPrompt, len(prompts))
	for i, p := range prompts {
		p.IsHearted = heartedSet[p.ID.Hex()]
		p.IsSaved = savedSet[p.ID.Hex()]
		enriched[i] = EnrichedPrompt{Prompt: p}

		if author, ok := userCache[p.UserID]; ok {
			enriched[i].Author = author
		} else if user, err := h.profiles.GetProfile(p.UserID); err == nil {
			compact := user.ToCompact()
			userCache[p.UserID] = compact
			enriched[i].Author = compact
		}
	}
	return enriched, nil
}
