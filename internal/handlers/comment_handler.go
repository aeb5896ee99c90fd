package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments      gateway.CommentGateway
	prompts       gateway.PromptGateway
	profiles      gateway.ProfileGateway
	notifications gateway.NotificationGateway
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	comments gateway.CommentGateway,
	prompts gateway.PromptGateway,
	profiles gateway.ProfileGateway,
	notifications gateway.NotificationGateway,
) *CommentHandler {
	return &CommentHandler{
		comments:      comments,
		prompts:       prompts,
		profiles:      profiles,
		notifications: notifications,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/prompts/:prompt_id/comments", h.GetCommentsForPrompt)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// EnrichedComment includes author info
type EnrichedComment struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// CreateComment creates a comment on a prompt and notifies its owner
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prompt, err := h.prompts.GetByID(c.Request().Context(), req.PromptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}

	comment := &models.Comment{
		PromptID: req.PromptID,
		RepoID:   req.RepoID,
		UserID:   currentUserID,
		Content:  req.Content,
	}
	if err := h.comments.Create(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.prompts.AdjustCommentCount(context.Background(), req.PromptID, 1)

	if prompt.UserID != currentUserID {
		if actor, err := h.profiles.GetProfile(currentUserID); err == nil {
			notification := &models.Notification{
				Type:        models.NotificationCommentAdded,
				ActorID:     currentUserID,
				RecipientID: prompt.UserID,
				TargetID:    req.PromptID,
				TargetType:  "prompt",
				Title:       "New comment",
				Message:     actor.Username + " commented on your prompt \"" + prompt.Title + "\"",
			}
			if err := h.notifications.Create(notification); err != nil {
				c.Logger().Warnf("failed to create comment notification: %v", err)
			}
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPrompt retrieves the comments on a prompt with author info
func (h *CommentHandler) GetCommentsForPrompt(c echo.Context) error {
	promptID := c.Param("prompt_id")

	comments, err := h.comments.GetByPromptID(promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedComment, len(comments))
	for i, comment := range comments {
		enriched[i] = EnrichedComment{Comment: comment}
		if author, ok := userCache[comment.UserID]; ok {
			enriched[i].Author = author
		} else if user, err := h.profiles.GetProfile(comment.UserID); err == nil {
			compact := user.ToCompact()
			userCache[comment.UserID] = compact
			enriched[i].Author = compact
		}
	}
	return c.JSON(http.StatusOK, enriched)
}

// UpdateComment updates a comment owned by the caller
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.comments.GetByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your comment")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment.Content = req.Content
	if err := h.comments.Update(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment owned by the caller
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.comments.GetByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your comment")
	}

	if err := h.comments.Delete(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	go h.prompts.AdjustCommentCount(context.Background(), comment.PromptID, -1)

	return c.NoContent(http.StatusNoContent)
}
