package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// FollowHandler handles HTTP requests related to follows
type FollowHandler struct {
	social        gateway.SocialGateway
	profiles      gateway.ProfileGateway
	notifications gateway.NotificationGateway
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	social gateway.SocialGateway,
	profiles gateway.ProfileGateway,
	notifications gateway.NotificationGateway,
) *FollowHandler {
	return &FollowHandler{
		social:        social,
		profiles:      profiles,
		notifications: notifications,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	// Verify target exists
	if _, err := h.profiles.GetProfile(uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := h.social.Follow(currentUserID, uint(targetID)); err != nil {
		if err.Error() == "already following" {
			return echo.NewHTTPError(http.StatusConflict, "Already following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if actor, err := h.profiles.GetProfile(currentUserID); err == nil {
		notification := &models.Notification{
			Type:        models.NotificationNewFollower,
			ActorID:     currentUserID,
			RecipientID: uint(targetID),
			TargetID:    strconv.FormatUint(uint64(currentUserID), 10),
			TargetType:  "user",
			Title:       "New follower",
			Message:     actor.Username + " started following you",
		}
		if err := h.notifications.Create(notification); err != nil {
			c.Logger().Warnf("failed to create follow notification: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"following": true})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.social.Unfollow(currentUserID, uint(targetID)); err != nil {
		if err.Error() == "follow relationship not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// GetFollowing returns the IDs of the users the caller follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ids, err := h.social.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"user_ids": ids})
}
