package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/loan-platform/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	OpenCountsByAdmin(ctx context.Context) (map[int64]int64, error)
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (owner_id, assigned_admin_id, subject, message, priority, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query,
		ticket.OwnerID,
		ticket.AssignedAdminID,
		ticket.Subject,
		ticket.Message,
		ticket.Priority,
		ticket.Status,
		ticket.CreatedBy,
	).Scan(&ticket.ID, &ticket.CreatedAt); err != nil {
		return err
	}
	return r.fillNames(ctx, ticket)
}

const ticketColumns = `
        t.id, t.owner_id, o.name, o.email, t.assigned_admin_id, a.name,
        t.subject, t.message, t.priority, t.status, t.created_by, t.created_at`

const ticketJoins = `
        FROM tickets t
        JOIN users o ON o.id = t.owner_id
        LEFT JOIN users a ON a.id = t.assigned_admin_id`

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ticketJoins + ` WHERE t.id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.OwnerID,
		&ticket.OwnerName,
		&ticket.OwnerEmail,
		&ticket.AssignedAdminID,
		&ticket.AssignedAdminName,
		&ticket.Subject,
		&ticket.Message,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ticketJoins + `
        WHERE t.owner_id=$1 ORDER BY t.created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ticketJoins + ` ORDER BY t.created_at DESC`
	return r.list(ctx, query)
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.OwnerID,
			&ticket.OwnerName,
			&ticket.OwnerEmail,
			&ticket.AssignedAdminID,
			&ticket.AssignedAdminName,
			&ticket.Subject,
			&ticket.Message,
			&ticket.Priority,
			&ticket.Status,
			&ticket.CreatedBy,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

// OpenCountsByAdmin returns the number of open or in-progress tickets per
// assigned admin. Admins without tickets are absent from the map.
func (r *ticketRepository) OpenCountsByAdmin(ctx context.Context) (map[int64]int64, error) {
	const query = `
        SELECT assigned_admin_id, COUNT(*)
        FROM tickets
        WHERE assigned_admin_id IS NOT NULL AND status IN ($1, $2)
        GROUP BY assigned_admin_id`

	rows, err := r.pool.Query(ctx, query, domain.TicketStatusOpen, domain.TicketStatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var (
			adminID int64
			count   int64
		)
		if err := rows.Scan(&adminID, &count); err != nil {
			return nil, err
		}
		counts[adminID] = count
	}
	return counts, rows.Err()
}

func (r *ticketRepository) CountByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM tickets GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var (
			status domain.TicketStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ticketRepository) fillNames(ctx context.Context, ticket *domain.Ticket) error {
	fetched, err := r.GetByID(ctx, ticket.ID)
	if err != nil {
		return err
	}
	*ticket = *fetched
	return nil
}
