package domain

import "time"

// ApplicationStatus enumerates the review states of a loan application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether the status is one of the known values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// DocumentKind separates the mandatory submission documents from those
// uploaded later on request.
type DocumentKind string

const (
	DocumentKindInitial    DocumentKind = "initial"
	DocumentKindAdditional DocumentKind = "additional"
)

// ApplicationDocument is a stored file reference belonging to an application.
type ApplicationDocument struct {
	ID            int64
	ApplicationID int64
	FileName      string
	Kind          DocumentKind
	Position      int
	CreatedAt     time.Time
}

// LoanApplication is the aggregate for a client's loan request. Documents and
// AdditionalDocuments hold stored file names ordered by upload position.
type LoanApplication struct {
	ID                     int64
	ClientID               int64
	ClientName             string
	ClientEmail            string
	LoanType               string
	Amount                 float64
	Purpose                string
	Documents              []string
	AdditionalDocuments    []string
	Status                 ApplicationStatus
	AdminNote              string
	RequiresAdditionalDocs bool
	RequiredDocsNote       string
	CreatedAt              time.Time
}

// ApplicationStats is the aggregate consumed by the public stats endpoint.
type ApplicationStats struct {
	Total     int64
	Approved  int64
	Rejected  int64
	Disbursed float64
}
