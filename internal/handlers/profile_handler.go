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

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	profiles gateway.ProfileGateway
	social   gateway.SocialGateway
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles gateway.ProfileGateway, social gateway.SocialGateway) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, social: social}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMyProfile)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/username-available", h.CheckUsername)
	g.GET("/users/:user_id", h.GetUser)
	g.PUT("/users/me", h.UpdateMyProfile)
}

// ProfileResponse is a user plus their follower count
type ProfileResponse struct {
	models.User
	FollowerCount int64 `json:"follower_count"`
}

func (h *ProfileHandler) profileResponse(user *models.User) ProfileResponse {
	resp := ProfileResponse{User: *user}
	if count, err := h.social.GetFollowerCount(user.ID); err == nil {
		resp.FollowerCount = count
	}
	return resp
}

// GetMyProfile returns the authenticated user's profile
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.profiles.GetProfile(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, h.profileResponse(user))
}

// GetUser returns a user's public profile by ID
func (h *ProfileHandler) GetUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.profiles.GetProfile(uint(userID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.Password = ""
	user.Email = ""
	return c.JSON(http.StatusOK, h.profileResponse(user))
}

// UpdateMyProfile updates the authenticated user's profile fields
func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profiles.UpdateProfile(currentUserID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.profileResponse(user))
}

// CheckUsername reports whether a username is still free
func (h *ProfileHandler) CheckUsername(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username is required")
	}

	available, err := h.profiles.CheckUsernameAvailable(username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"available": available})
}

// SearchUsers searches users by username or display name
func (h *ProfileHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	users, err := h.profiles.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"users": results})
}
