package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// FeedbackHandler exposes staff feedback.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateFeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	fb, err := h.feedback.GiveFeedback(c.UserContext(), actor, service.GiveFeedbackInput{
		TargetUsername: req.GivenTo,
		Rating:         req.Rating,
		Comment:        req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, dto.NewFeedbackResponse(*fb))
}

// List handles GET /api/feedback.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	actor, err := auth.MustPrincipal(c)
	if err != nil {
		return err
	}
	rows, err := h.feedback.ListFeedback(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewFeedbackList(rows))
}
