package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// SaveHandler handles HTTP requests related to saves
type SaveHandler struct {
	social        gateway.SocialGateway
	prompts       gateway.PromptGateway
	notifications gateway.NotificationGateway
	profiles      gateway.ProfileGateway
}

// NewSaveHandler creates a new SaveHandler
func NewSaveHandler(
	social gateway.SocialGateway,
	prompts gateway.PromptGateway,
	notifications gateway.NotificationGateway,
	profiles gateway.ProfileGateway,
) *SaveHandler {
	return &SaveHandler{
		social:        social,
		prompts:       prompts,
		notifications: notifications,
		profiles:      profiles,
	}
}

// RegisterSaveRoutes registers save-related routes
func (h *SaveHandler) RegisterSaveRoutes(g *echo.Group) {
	g.POST("/prompts/:prompt_id/save", h.ToggleSave)
	g.GET("/saves", h.GetSavedPrompts)
}

// ToggleSaveRequest optionally files the save into a collection
type ToggleSaveRequest struct {
	CollectionID uint `json:"collection_id,omitempty"`
}

// ToggleSave flips the caller's save on a prompt and reports the
// authoritative verdict. A cross-user save notifies the prompt owner.
func (h *SaveHandler) ToggleSave(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	promptID := c.Param("prompt_id")

	var req ToggleSaveRequest
	// Body is optional for a plain toggle
	_ = c.Bind(&req)

	prompt, err := h.prompts.GetByID(c.Request().Context(), promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}

	action, err := h.social.ToggleSave(currentUserID, promptID, req.CollectionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	delta := 1
	if action == gateway.ToggleRemoved {
		delta = -1
	}
	go h.prompts.AdjustSaveCount(context.Background(), promptID, delta)

	if action == gateway.ToggleAdded && prompt.UserID != currentUserID {
		if actor, err := h.profiles.GetProfile(currentUserID); err == nil {
			notification := &models.Notification{
				Type:        models.NotificationPromptSaved,
				ActorID:     currentUserID,
				RecipientID: prompt.UserID,
				TargetID:    promptID,
				TargetType:  "prompt",
				Title:       "Prompt saved",
				Message:     actor.Username + " saved your prompt \"" + prompt.Title + "\"",
			}
			if err := h.notifications.Create(notification); err != nil {
				c.Logger().Warnf("failed to create save notification: %v", err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"action": action})
}

// GetSavedPrompts returns the IDs of the prompts the caller has saved
func (h *SaveHandler) GetSavedPrompts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ids, err := h.social.GetSavedPromptIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"prompt_ids": ids})
}
