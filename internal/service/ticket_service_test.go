package service

import (
	"context"
	"testing"

	"github.com/spec-kit/loan-platform/internal/domain"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

func newTicketFixture() (*TicketService, *userRepoStub, *ticketRepoStub) {
	users := newUserRepoStub()
	tickets := newTicketRepoStub()
	assignment := NewAssignmentService(AssignmentDependencies{UserRepo: users, TicketRepo: tickets})
	svc := NewTicketService(TicketDependencies{TicketRepo: tickets, Assignment: assignment})
	return svc, users, tickets
}

func TestCreateTicketAssignsAndDefaultsPriority(t *testing.T) {
	svc, users, _ := newTicketFixture()
	admin := users.add(domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})
	client := users.add(domain.User{Name: "Client", Email: "client@example.com", Role: domain.RoleClient})

	ticket, err := svc.CreateTicket(context.Background(), client, TicketCreateInput{
		Subject: "Need help",
		Message: "My application is stuck.",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Fatalf("expected default priority medium, got %q", ticket.Priority)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Fatalf("expected status open, got %q", ticket.Status)
	}
	if ticket.CreatedBy != domain.TicketOriginClient {
		t.Fatalf("expected created_by client, got %q", ticket.CreatedBy)
	}
	if ticket.AssignedAdminID == nil || *ticket.AssignedAdminID != admin.ID {
		t.Fatalf("expected assignment to admin %d, got %v", admin.ID, ticket.AssignedAdminID)
	}
}

func TestCreateTicketWithoutAdminsStaysUnassigned(t *testing.T) {
	svc, users, _ := newTicketFixture()
	client := users.add(domain.User{Name: "Client", Email: "client@example.com", Role: domain.RoleClient})

	ticket, err := svc.CreateTicket(context.Background(), client, TicketCreateInput{
		Subject:  "Need help",
		Message:  "Anyone there?",
		Priority: domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if ticket.AssignedAdminID != nil {
		t.Fatalf("expected unassigned ticket, got admin %d", *ticket.AssignedAdminID)
	}
	if ticket.Priority != domain.TicketPriorityHigh {
		t.Fatalf("expected priority high, got %q", ticket.Priority)
	}
}

func TestCreateTicketRejectsBlankFields(t *testing.T) {
	svc, users, _ := newTicketFixture()
	client := users.add(domain.User{Name: "Client", Email: "client@example.com", Role: domain.RoleClient})

	_, err := svc.CreateTicket(context.Background(), client, TicketCreateInput{Subject: "  ", Message: "hi"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.ToDomainError(err).Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %q", apperrors.ToDomainError(err).Code)
	}
}

func TestCreateSystemTicketOrigin(t *testing.T) {
	svc, users, _ := newTicketFixture()
	client := users.add(domain.User{Name: "Client", Email: "client@example.com", Role: domain.RoleClient})

	ticket, err := svc.CreateSystemTicket(context.Background(), client.ID, "Application Submitted", "Pending review.")
	if err != nil {
		t.Fatalf("CreateSystemTicket: %v", err)
	}
	if ticket.CreatedBy != domain.TicketOriginSystem {
		t.Fatalf("expected system origin, got %q", ticket.CreatedBy)
	}
	if ticket.OwnerID != client.ID {
		t.Fatalf("expected owner %d, got %d", client.ID, ticket.OwnerID)
	}
}

func TestUpdateStatusValidatesAndPersists(t *testing.T) {
	svc, users, tickets := newTicketFixture()
	admin := users.add(domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})
	client := users.add(domain.User{Name: "Client", Email: "client@example.com", Role: domain.RoleClient})

	created, err := svc.CreateTicket(context.Background(), client, TicketCreateInput{Subject: "s", Message: "m"})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), admin, created.ID, "closed"); err == nil {
		t.Fatal("expected validation error for unknown status")
	}

	updated, err := svc.UpdateStatus(context.Background(), admin, created.ID, domain.TicketStatusResolved)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Fatalf("expected resolved, got %q", updated.Status)
	}

	stored, err := tickets.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.TicketStatusResolved {
		t.Fatalf("status not persisted, got %q", stored.Status)
	}
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	svc, users, _ := newTicketFixture()
	admin := users.add(domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})

	_, err := svc.UpdateStatus(context.Background(), admin, 404, domain.TicketStatusResolved)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperrors.ToDomainError(err).Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %q", apperrors.ToDomainError(err).Code)
	}
}
