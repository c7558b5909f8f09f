package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/loan-platform/internal/api/dto"
	"github.com/spec-kit/loan-platform/internal/auth"
	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/service"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), user, service.TicketCreateInput{
		Subject:  req.Subject,
		Message:  req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// UpdateStatus PATCH /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	admin, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TicketStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStatus(c.Context(), admin, ticketID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// ListMine GET /api/tickets/my.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListOwned(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// ListAll GET /api/tickets.
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return items
}
