package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/loan-platform/internal/domain"
)

// ApplicationRepository encapsulates loan application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.LoanApplication, documents []string) error
	GetByID(ctx context.Context, id int64) (*domain.LoanApplication, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.LoanApplication, error)
	ListAll(ctx context.Context) ([]domain.LoanApplication, error)
	UpdateDecision(ctx context.Context, app *domain.LoanApplication) error
	AppendAdditionalDocument(ctx context.Context, appID int64, fileName string) error
	Stats(ctx context.Context) (domain.ApplicationStats, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates the repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.LoanApplication, documents []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertApp = `
        INSERT INTO loan_applications (client_id, loan_type, amount, purpose, status, admin_note, requires_additional_docs, required_docs_note)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertApp,
		app.ClientID,
		app.LoanType,
		app.Amount,
		app.Purpose,
		app.Status,
		app.AdminNote,
		app.RequiresAdditionalDocs,
		app.RequiredDocsNote,
	).Scan(&app.ID, &app.CreatedAt); err != nil {
		return err
	}

	const insertDoc = `
        INSERT INTO application_documents (application_id, file_name, kind, position)
        VALUES ($1,$2,$3,$4)`
	for i, name := range documents {
		if _, err := tx.Exec(ctx, insertDoc, app.ID, name, domain.DocumentKindInitial, i); err != nil {
			return err
		}
	}
	app.Documents = documents

	return tx.Commit(ctx)
}

const applicationColumns = `
        a.id, a.client_id, u.name, u.email, a.loan_type, a.amount, a.purpose,
        a.status, a.admin_note, a.requires_additional_docs, a.required_docs_note, a.created_at`

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
        FROM loan_applications a JOIN users u ON u.id = a.client_id
        WHERE a.id=$1`

	var app domain.LoanApplication
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.ClientID,
		&app.ClientName,
		&app.ClientEmail,
		&app.LoanType,
		&app.Amount,
		&app.Purpose,
		&app.Status,
		&app.AdminNote,
		&app.RequiresAdditionalDocs,
		&app.RequiredDocsNote,
		&app.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.loadDocuments(ctx, []*domain.LoanApplication{&app}); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
        FROM loan_applications a JOIN users u ON u.id = a.client_id
        WHERE a.client_id=$1 ORDER BY a.created_at DESC`
	return r.list(ctx, query, clientID)
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]domain.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
        FROM loan_applications a JOIN users u ON u.id = a.client_id
        ORDER BY a.created_at DESC`
	return r.list(ctx, query)
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]domain.LoanApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LoanApplication
	for rows.Next() {
		var app domain.LoanApplication
		if err := rows.Scan(
			&app.ID,
			&app.ClientID,
			&app.ClientName,
			&app.ClientEmail,
			&app.LoanType,
			&app.Amount,
			&app.Purpose,
			&app.Status,
			&app.AdminNote,
			&app.RequiresAdditionalDocs,
			&app.RequiredDocsNote,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.LoanApplication, len(result))
	for i := range result {
		refs[i] = &result[i]
	}
	if err := r.loadDocuments(ctx, refs); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *applicationRepository) loadDocuments(ctx context.Context, apps []*domain.LoanApplication) error {
	if len(apps) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.LoanApplication, len(apps))
	ids := make([]int64, 0, len(apps))
	for _, app := range apps {
		app.Documents = []string{}
		app.AdditionalDocuments = []string{}
		byID[app.ID] = app
		ids = append(ids, app.ID)
	}

	const query = `
        SELECT application_id, file_name, kind
        FROM application_documents
        WHERE application_id = ANY($1)
        ORDER BY application_id, kind, position`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			appID    int64
			fileName string
			kind     domain.DocumentKind
		)
		if err := rows.Scan(&appID, &fileName, &kind); err != nil {
			return err
		}
		app, ok := byID[appID]
		if !ok {
			continue
		}
		switch kind {
		case domain.DocumentKindAdditional:
			app.AdditionalDocuments = append(app.AdditionalDocuments, fileName)
		default:
			app.Documents = append(app.Documents, fileName)
		}
	}
	return rows.Err()
}

func (r *applicationRepository) UpdateDecision(ctx context.Context, app *domain.LoanApplication) error {
	const query = `
        UPDATE loan_applications
        SET status=$1, admin_note=$2, requires_additional_docs=$3, required_docs_note=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		app.Status,
		app.AdminNote,
		app.RequiresAdditionalDocs,
		app.RequiredDocsNote,
		app.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AppendAdditionalDocument inserts the file reference at the next position
// and clears the outstanding document request in one transaction.
func (r *applicationRepository) AppendAdditionalDocument(ctx context.Context, appID int64, fileName string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertDoc = `
        INSERT INTO application_documents (application_id, file_name, kind, position)
        SELECT $1, $2, $3, COALESCE(MAX(position)+1, 0)
        FROM application_documents WHERE application_id=$1 AND kind=$3`
	if _, err := tx.Exec(ctx, insertDoc, appID, fileName, domain.DocumentKindAdditional); err != nil {
		return err
	}

	const clearRequest = `
        UPDATE loan_applications
        SET requires_additional_docs=FALSE, required_docs_note=''
        WHERE id=$1`
	if _, err := tx.Exec(ctx, clearRequest, appID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *applicationRepository) Stats(ctx context.Context) (domain.ApplicationStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status=$1),
               COUNT(*) FILTER (WHERE status=$2),
               COALESCE(SUM(amount) FILTER (WHERE status=$1), 0)
        FROM loan_applications`

	var stats domain.ApplicationStats
	err := r.pool.QueryRow(ctx, query,
		domain.ApplicationStatusApproved,
		domain.ApplicationStatusRejected,
	).Scan(&stats.Total, &stats.Approved, &stats.Rejected, &stats.Disbursed)
	return stats, err
}
