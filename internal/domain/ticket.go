package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// TicketPriority enumerates urgency. Callers send it as-is; it is not
// validated at creation, only defaulted when empty.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// TicketOrigin records who created the ticket. System tickets are generated
// by the application workflow rather than a human actor.
type TicketOrigin string

const (
	TicketOriginClient     TicketOrigin = "client"
	TicketOriginAdmin      TicketOrigin = "admin"
	TicketOriginSuperAdmin TicketOrigin = "super_admin"
	TicketOriginSystem     TicketOrigin = "system"
)

// Ticket is the aggregate for support requests. Assignment to an admin is
// advisory: several tickets may share an assignee.
type Ticket struct {
	ID                int64
	OwnerID           int64
	OwnerName         string
	OwnerEmail        string
	AssignedAdminID   *int64
	AssignedAdminName *string
	Subject           string
	Message           string
	Priority          TicketPriority
	Status            TicketStatus
	CreatedBy         TicketOrigin
	CreatedAt         time.Time
}
