package dto

import (
	"time"

	"github.com/spec-kit/loan-platform/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject  string                `json:"subject"`
	Message  string                `json:"message"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketStatusUpdateRequest payload.
type TicketStatusUpdateRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse is the API view of a ticket.
type TicketResponse struct {
	ID                int64                 `json:"id"`
	OwnerID           int64                 `json:"owner_id"`
	OwnerName         string                `json:"owner_name"`
	OwnerEmail        string                `json:"owner_email"`
	AssignedAdminID   *int64                `json:"assigned_admin_id"`
	AssignedAdminName *string               `json:"assigned_admin_name"`
	Subject           string                `json:"subject"`
	Message           string                `json:"message"`
	Priority          domain.TicketPriority `json:"priority"`
	Status            domain.TicketStatus   `json:"status"`
	CreatedBy         domain.TicketOrigin   `json:"created_by"`
	CreatedAt         time.Time             `json:"created_at"`
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                ticket.ID,
		OwnerID:           ticket.OwnerID,
		OwnerName:         ticket.OwnerName,
		OwnerEmail:        ticket.OwnerEmail,
		AssignedAdminID:   ticket.AssignedAdminID,
		AssignedAdminName: ticket.AssignedAdminName,
		Subject:           ticket.Subject,
		Message:           ticket.Message,
		Priority:          ticket.Priority,
		Status:            ticket.Status,
		CreatedBy:         ticket.CreatedBy,
		CreatedAt:         ticket.CreatedAt,
	}
}
