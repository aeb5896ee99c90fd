package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
)

// HeartHandler handles HTTP requests related to hearts
type HeartHandler struct {
	social  gateway.SocialGateway
	prompts gateway.PromptGateway
}

// NewHeartHandler creates a new HeartHandler
func NewHeartHandler(social gateway.SocialGateway, prompts gateway.PromptGateway) *HeartHandler {
	return &HeartHandler{social: social, prompts: prompts}
}

// RegisterHeartRoutes registers heart-related routes
func (h *HeartHandler) RegisterHeartRoutes(g *echo.Group) {
	g.POST("/prompts/:prompt_id/heart", h.ToggleHeart)
	g.GET("/hearts", h.GetHeartedPrompts)
}

// ToggleHeart flips the caller's heart on a prompt and reports the
// authoritative verdict, which the client reconciles against its optimistic
// state.
func (h *HeartHandler) ToggleHeart(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	promptID := c.Param("prompt_id")

	// Verify prompt exists
	if _, err := h.prompts.GetByID(c.Request().Context(), promptID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prompt not found")
	}

	action, err := h.social.ToggleHeart(currentUserID, promptID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	delta := 1
	if action == gateway.ToggleRemoved {
		delta = -1
	}
	// the counter adjust outlives the request, so it must not ride on its context
	go h.prompts.AdjustHearts(context.Background(), promptID, delta)

	return c.JSON(http.StatusOK, echo.Map{"action": action})
}

// GetHeartedPrompts returns the IDs of the prompts the caller has hearted
func (h *HeartHandler) GetHeartedPrompts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ids, err := h.social.GetHeartedPromptIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"prompt_ids": ids})
}
