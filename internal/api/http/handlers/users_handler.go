package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// UsersHandler exposes the user directory and manager assignment.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	profiles, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewUserList(profiles))
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	profile, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewUserResponse(profile.User, profile.Manager))
}

// SetManager handles PATCH /api/users/manager.
func (h *UsersHandler) SetManager(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SetManagerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	profile, err := h.users.SetManager(c.UserContext(), actor, service.SetManagerInput{
		Username:        req.Username,
		ManagerUsername: req.ManagerUsername,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewUserResponse(profile.User, profile.Manager))
}
