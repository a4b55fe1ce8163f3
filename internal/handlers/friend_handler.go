package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/igr/media-backend/internal/models"
	"github.com/igr/media-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendHandler handles HTTP requests for the friend/subscription lifecycle
type FriendHandler struct {
	userService *services.UserService
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(userService *services.UserService) *FriendHandler {
	return &FriendHandler{userService: userService}
}

// RegisterFriendRoutes registers relationship-related routes
func (h *FriendHandler) RegisterFriendRoutes(g *echo.Group) {
	g.GET("/users/me/friends", h.GetFriends)
	g.POST("/users/friends/invite", h.Invite)
	g.POST("/users/friends/accept", h.Accept)
	g.POST("/users/subscriptions", h.Subscribe)
	g.DELETE("/users/subscriptions/:name", h.Unsubscribe)
}

func (h *FriendHandler) bindTarget(c echo.Context) (string, error) {
	var req models.FriendActionRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req.TargetName, nil
}

// GetFriends lists every relationship edge the caller participates in
func (h *FriendHandler) GetFriends(c echo.Context) error {
	edges, err := h.userService.ListFriends(principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, edges)
}

// Invite sends a friend invitation: the target receives an inbox message
// and a subscription edge is created from the caller to the target.
func (h *FriendHandler) Invite(c echo.Context) error {
	targetName, err := h.bindTarget(c)
	if err != nil {
		return err
	}

	caller, err := h.userService.GetUser(principalFrom(c))
	if err != nil {
		return httpError(err)
	}
	if caller.Name == targetName {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot invite yourself")
	}

	if err := h.userService.GoFriend(c.Request().Context(), caller.Name, targetName); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Invitation sent"})
}

// Accept turns the caller's existing subscription edge to the target into
// a friend edge.
func (h *FriendHandler) Accept(c echo.Context) error {
	targetName, err := h.bindTarget(c)
	if err != nil {
		return err
	}

	if err := h.userService.AddFriend(principalFrom(c).UserID, targetName); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend added"})
}

// Subscribe creates a subscription edge from the caller to the target.
// No message is sent.
func (h *FriendHandler) Subscribe(c echo.Context) error {
	targetName, err := h.bindTarget(c)
	if err != nil {
		return err
	}

	if err := h.userService.AddSubscription(targetName, principalFrom(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Subscribed"})
}

// Unsubscribe removes the caller's edge to the named user
func (h *FriendHandler) Unsubscribe(c echo.Context) error {
	targetName := c.Param("name")
	if targetName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Target name is required")
	}

	if err := h.userService.DeleteSubscription(targetName, principalFrom(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
