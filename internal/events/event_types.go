package events

import (
	"time"

	"github.com/spec-kit/loan-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationDecided   EventType = "application_decided"
	EventDocumentUploaded     EventType = "document_uploaded"
	EventTicketCreated        EventType = "ticket_created"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role   domain.Role `json:"role"`
	UserID *int64      `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID int64   `json:"application_id"`
	LoanType      string  `json:"loan_type"`
	Amount        float64 `json:"amount"`
}

// ApplicationDecidedPayload payload.
type ApplicationDecidedPayload struct {
	ApplicationID int64                    `json:"application_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
	RequiresDocs  bool                     `json:"requires_additional_docs"`
}

// DocumentUploadedPayload payload.
type DocumentUploadedPayload struct {
	ApplicationID int64  `json:"application_id"`
	FileName      string `json:"file_name"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID        int64                 `json:"ticket_id"`
	Subject         string                `json:"subject"`
	Priority        domain.TicketPriority `json:"priority"`
	CreatedBy       domain.TicketOrigin   `json:"created_by"`
	AssignedAdminID *int64                `json:"assigned_admin_id,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  int64               `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}
