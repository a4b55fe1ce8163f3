package handlers

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/igr/media-backend/internal/models"
	"github.com/igr/media-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// maxAvatarBytes caps avatar uploads.
const maxAvatarBytes = 5 << 20

// UserHandler handles HTTP requests related to user profiles and avatars
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetProfile)
	g.PUT("/users/me", h.UpdateProfile)
	g.DELETE("/users/me", h.DeleteProfile)
	g.GET("/users/me/messages", h.GetMessages)
	g.PUT("/users/me/image", h.UpdateImage)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
}

// RegisterPublicRoutes registers routes reachable without authentication.
func (h *UserHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/users/:id/image", h.GetImage)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetUser(principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile. Whatever id the
// payload carries, the service persists the caller's own row.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateUser(req, principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteProfile deletes the authenticated user's profile and everything
// that belongs to it.
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	if err := h.userService.DeleteUser(c.Request().Context(), principalFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUser retrieves a user profile by numeric id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userService.FindByID(uint(id), principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetMessages returns the authenticated user's inbox
func (h *UserHandler) GetMessages(c echo.Context) error {
	messages, err := h.userService.ListMessages(c.Request().Context(), principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messages)
}

// UpdateImage replaces the authenticated user's avatar from a multipart
// form field named "image".
func (h *UserHandler) UpdateImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	if fileHeader.Size > maxAvatarBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to open image file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to read image file")
	}

	user, err := h.userService.UpdateUserImage(data, principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetImage serves the raw avatar bytes for a user id
func (h *UserHandler) GetImage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	data, err := h.userService.GetPhotoByID(uint(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.NewHTTPError(http.StatusNotFound, "Avatar not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}

// SearchUsers searches for users by a query string (email or name)
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userService.SearchUsers(query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}
