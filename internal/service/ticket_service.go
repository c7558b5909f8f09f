package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/events"
	"github.com/spec-kit/loan-platform/internal/repository"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// TicketService coordinates support ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	assignment *AssignmentService
	dispatcher events.Dispatcher
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Assignment *AssignmentService
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject  string
	Message  string
	Priority domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		assignment: deps.Assignment,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket on behalf of an authenticated user. The
// ticket is auto-assigned to the least-loaded admin; it stays unassigned
// when no admin exists.
func (s *TicketService) CreateTicket(ctx context.Context, owner *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return nil, apperrors.NewValidationError("subject and message required", nil)
	}

	ticket := &domain.Ticket{
		OwnerID:   owner.ID,
		Subject:   subject,
		Message:   message,
		Priority:  input.Priority,
		Status:    domain.TicketStatusOpen,
		CreatedBy: domain.TicketOrigin(owner.Role),
	}
	return s.create(ctx, ticket, events.Actor{Role: owner.Role, UserID: &owner.ID})
}

// CreateSystemTicket creates a workflow-generated ticket addressed to the
// given owner.
func (s *TicketService) CreateSystemTicket(ctx context.Context, ownerID int64, subject, message string) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		OwnerID:   ownerID,
		Subject:   subject,
		Message:   message,
		Priority:  domain.TicketPriorityMedium,
		Status:    domain.TicketStatusOpen,
		CreatedBy: domain.TicketOriginSystem,
	}
	return s.create(ctx, ticket, events.Actor{Role: "system"})
}

func (s *TicketService) create(ctx context.Context, ticket *domain.Ticket, actor events.Actor) (*domain.Ticket, error) {
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	adminID, err := s.assignment.LeastLoadedAdminID(ctx)
	if err != nil {
		return nil, err
	}
	ticket.AssignedAdminID = adminID

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventTicketCreated,
		Actor: actor,
		Payload: events.TicketCreatedPayload{
			TicketID:        ticket.ID,
			Subject:         ticket.Subject,
			Priority:        ticket.Priority,
			CreatedBy:       ticket.CreatedBy,
			AssignedAdminID: ticket.AssignedAdminID,
		},
	})
	return ticket, nil
}

// UpdateStatus transitions a ticket to the given status. Admin only, gated
// at the route level.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, ticketID int64, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": status})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	if err := s.tickets.UpdateStatus(ctx, ticketID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	ticket.Status = status

	s.publishEvent(ctx, events.Event{
		Type:  events.EventTicketStatusChanged,
		Actor: events.Actor{Role: actor.Role, UserID: &actor.ID},
		Payload: events.TicketStatusChangedPayload{
			TicketID:  ticket.ID,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// ListOwned returns the caller's tickets, newest first.
func (s *TicketService) ListOwned(ctx context.Context, ownerID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListAll returns every ticket, newest first.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
