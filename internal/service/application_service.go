package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/events"
	"github.com/spec-kit/loan-platform/internal/repository"
	"github.com/spec-kit/loan-platform/internal/storage"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// RequiredDocumentFields are the mandatory multipart fields at submission.
var RequiredDocumentFields = []string{"id_proof", "income_proof", "address_proof"}

// ApplicationService coordinates the loan application workflow.
type ApplicationService struct {
	apps       repository.ApplicationRepository
	tickets    *TicketService
	store      *storage.Store
	dispatcher events.Dispatcher
}

// ApplicationDependencies bundles requirements for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	Tickets         *TicketService
	Store           *storage.Store
	Dispatcher      events.Dispatcher
}

// DocumentUpload carries one uploaded file into the service.
type DocumentUpload struct {
	FileName string
	Content  io.Reader
}

// ApplicationCreateInput describes the submission payload.
type ApplicationCreateInput struct {
	LoanType  string
	Amount    float64
	Purpose   string
	Documents []DocumentUpload
}

// DecisionInput describes an admin review decision.
type DecisionInput struct {
	Status                 domain.ApplicationStatus
	AdminNote              string
	RequiresAdditionalDocs bool
	RequiredDocsNote       string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		apps:       deps.ApplicationRepo,
		tickets:    deps.Tickets,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates a loan application for a client with its three mandatory
// documents, then raises a system ticket for review. File writes are not
// rolled back if a later step fails.
func (s *ApplicationService) Submit(ctx context.Context, client *domain.User, input ApplicationCreateInput) (*domain.LoanApplication, error) {
	if client.Role != domain.RoleClient {
		return nil, apperrors.NewForbidden("only clients can apply")
	}
	if strings.TrimSpace(input.LoanType) == "" || strings.TrimSpace(input.Purpose) == "" {
		return nil, apperrors.NewValidationError("loan_type and purpose required", nil)
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if len(input.Documents) != len(RequiredDocumentFields) {
		return nil, apperrors.NewValidationError("three documents required", map[string]any{
			"fields": RequiredDocumentFields,
		})
	}

	stored := make([]string, 0, len(input.Documents))
	for _, doc := range input.Documents {
		name, err := s.store.Save(fmt.Sprintf("%d_", client.ID), doc.FileName, doc.Content)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		stored = append(stored, name)
	}

	app := &domain.LoanApplication{
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		LoanType:    strings.TrimSpace(input.LoanType),
		Amount:      input.Amount,
		Purpose:     strings.TrimSpace(input.Purpose),
		Status:      domain.ApplicationStatusPending,
	}
	if err := s.apps.Create(ctx, app, stored); err != nil {
		return nil, apperrors.MapError(err)
	}

	if _, err := s.tickets.CreateSystemTicket(ctx, client.ID,
		"Application Submitted",
		fmt.Sprintf("Your %s request is submitted and pending admin review.", app.LoanType),
	); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventApplicationSubmitted,
		Actor: events.Actor{Role: client.Role, UserID: &client.ID},
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			LoanType:      app.LoanType,
			Amount:        app.Amount,
		},
	})
	return app, nil
}

// UploadAdditionalDocument appends a document to the caller's application,
// clears any outstanding document request and notifies admins via a system
// ticket.
func (s *ApplicationService) UploadAdditionalDocument(ctx context.Context, caller *domain.User, appID int64, doc DocumentUpload) (*domain.LoanApplication, error) {
	app, err := s.getByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.ClientID != caller.ID {
		return nil, apperrors.NewForbidden("only the owner can upload additional documents")
	}

	name, err := s.store.Save(fmt.Sprintf("%d_extra_", caller.ID), doc.FileName, doc.Content)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.apps.AppendAdditionalDocument(ctx, appID, name); err != nil {
		return nil, apperrors.MapError(err)
	}

	if _, err := s.tickets.CreateSystemTicket(ctx, caller.ID,
		"Additional Document Uploaded",
		fmt.Sprintf("Client uploaded additional document for application #%d.", appID),
	); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventDocumentUploaded,
		Actor: events.Actor{Role: caller.Role, UserID: &caller.ID},
		Payload: events.DocumentUploadedPayload{
			ApplicationID: appID,
			FileName:      name,
		},
	})
	return s.getByID(ctx, appID)
}

// Decide records an admin review decision and raises a system ticket for the
// application owner summarizing the outcome.
func (s *ApplicationService) Decide(ctx context.Context, admin *domain.User, appID int64, input DecisionInput) (*domain.LoanApplication, error) {
	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}

	app, err := s.getByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	oldStatus := app.Status
	app.Status = input.Status
	app.AdminNote = strings.TrimSpace(fmt.Sprintf("%s (updated by %s)", input.AdminNote, admin.Name))
	app.RequiresAdditionalDocs = input.RequiresAdditionalDocs
	app.RequiredDocsNote = input.RequiredDocsNote

	if err := s.apps.UpdateDecision(ctx, app); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"application_id": appID})
		}
		return nil, apperrors.MapError(err)
	}

	message := fmt.Sprintf("Your %s application is marked as %s.", app.LoanType, app.Status)
	if input.RequiredDocsNote != "" {
		message += " " + input.RequiredDocsNote
	}
	if _, err := s.tickets.CreateSystemTicket(ctx, app.ClientID,
		fmt.Sprintf("Application %s", app.Status), message,
	); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventApplicationDecided,
		Actor: events.Actor{Role: admin.Role, UserID: &admin.ID},
		Payload: events.ApplicationDecidedPayload{
			ApplicationID: app.ID,
			OldStatus:     oldStatus,
			NewStatus:     app.Status,
			RequiresDocs:  app.RequiresAdditionalDocs,
		},
	})
	return app, nil
}

// ListMine returns the caller's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, clientID int64) ([]domain.LoanApplication, error) {
	apps, err := s.apps.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return apps, nil
}

// ListAll returns every application, newest first.
func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.LoanApplication, error) {
	apps, err := s.apps.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return apps, nil
}

func (s *ApplicationService) getByID(ctx context.Context, appID int64) (*domain.LoanApplication, error) {
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"application_id": appID})
		}
		return nil, apperrors.MapError(err)
	}
	return app, nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
