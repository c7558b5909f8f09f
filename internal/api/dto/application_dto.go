package dto

import (
	"time"

	"github.com/spec-kit/loan-platform/internal/domain"
)

// ApplicationResponse is the API view of a loan application.
type ApplicationResponse struct {
	ID                     int64                    `json:"id"`
	ClientID               int64                    `json:"client_id"`
	ClientName             string                   `json:"client_name"`
	ClientEmail            string                   `json:"client_email"`
	LoanType               string                   `json:"loan_type"`
	Amount                 float64                  `json:"amount"`
	Purpose                string                   `json:"purpose"`
	Documents              []string                 `json:"documents"`
	AdditionalDocuments    []string                 `json:"additional_documents"`
	Status                 domain.ApplicationStatus `json:"status"`
	AdminNote              string                   `json:"admin_note"`
	RequiresAdditionalDocs bool                     `json:"requires_additional_docs"`
	RequiredDocsNote       string                   `json:"required_docs_note"`
	CreatedAt              time.Time                `json:"created_at"`
}

// NewApplicationResponse maps an application.
func NewApplicationResponse(app *domain.LoanApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:                     app.ID,
		ClientID:               app.ClientID,
		ClientName:             app.ClientName,
		ClientEmail:            app.ClientEmail,
		LoanType:               app.LoanType,
		Amount:                 app.Amount,
		Purpose:                app.Purpose,
		Documents:              app.Documents,
		AdditionalDocuments:    app.AdditionalDocuments,
		Status:                 app.Status,
		AdminNote:              app.AdminNote,
		RequiresAdditionalDocs: app.RequiresAdditionalDocs,
		RequiredDocsNote:       app.RequiredDocsNote,
		CreatedAt:              app.CreatedAt,
	}
}

// UpdateStatusRequest is the admin review payload.
type UpdateStatusRequest struct {
	Status                 domain.ApplicationStatus `json:"status"`
	AdminNote              string                   `json:"admin_note"`
	RequiresAdditionalDocs bool                     `json:"requires_additional_docs"`
	RequiredDocsNote       string                   `json:"required_docs_note"`
}
