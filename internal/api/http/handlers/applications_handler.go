package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/loan-platform/internal/api/dto"
	"github.com/spec-kit/loan-platform/internal/auth"
	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/service"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// ApplicationsHandler manages loan application endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(appService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: appService}
}

// Create POST /api/applications (multipart).
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
	if err != nil {
		return apperrors.NewValidationError("amount must be a number", nil)
	}

	docs := make([]service.DocumentUpload, 0, len(service.RequiredDocumentFields))
	closers := make([]multipart.File, 0, len(service.RequiredDocumentFields))
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	for _, field := range service.RequiredDocumentFields {
		header, err := c.FormFile(field)
		if err != nil {
			return apperrors.NewValidationError(field+" file required", nil)
		}
		f, err := header.Open()
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		closers = append(closers, f)
		docs = append(docs, service.DocumentUpload{FileName: header.Filename, Content: f})
	}

	app, err := h.service.Submit(c.Context(), user, service.ApplicationCreateInput{
		LoanType:  c.FormValue("loan_type"),
		Amount:    amount,
		Purpose:   c.FormValue("purpose"),
		Documents: docs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewApplicationResponse(app))
}

// UploadAdditionalDocument POST /api/applications/:id/additional-documents.
func (h *ApplicationsHandler) UploadAdditionalDocument(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	appID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	header, err := c.FormFile("document")
	if err != nil {
		return apperrors.NewValidationError("document file required", nil)
	}
	f, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer f.Close()

	app, err := h.service.UploadAdditionalDocument(c.Context(), user, appID, service.DocumentUpload{
		FileName: header.Filename,
		Content:  f,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponse(app))
}

// ListMine GET /api/applications/my.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	apps, err := h.service.ListMine(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(applicationResponses(apps))
}

// ListAll GET /api/applications.
func (h *ApplicationsHandler) ListAll(c *fiber.Ctx) error {
	apps, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(applicationResponses(apps))
}

// UpdateStatus PATCH /api/applications/:id.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	admin, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	appID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.service.Decide(c.Context(), admin, appID, service.DecisionInput{
		Status:                 req.Status,
		AdminNote:              req.AdminNote,
		RequiresAdditionalDocs: req.RequiresAdditionalDocs,
		RequiredDocsNote:       req.RequiredDocsNote,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponse(app))
}

func applicationResponses(apps []domain.LoanApplication) []dto.ApplicationResponse {
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewApplicationResponse(&apps[i]))
	}
	return items
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+param, nil)
	}
	return id, nil
}
