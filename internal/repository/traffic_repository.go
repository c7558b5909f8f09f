package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/loan-platform/internal/domain"
)

// TrafficRepository appends and aggregates API traffic events.
type TrafficRepository interface {
	Insert(ctx context.Context, event *domain.TrafficEvent) error
	Count(ctx context.Context) (int64, error)
	TopPaths(ctx context.Context, limit int) ([]domain.PathCount, error)
	RoleBreakdown(ctx context.Context) ([]domain.RoleCount, error)
}

type trafficRepository struct {
	pool *pgxpool.Pool
}

// NewTrafficRepository instantiates the repository.
func NewTrafficRepository(pool *pgxpool.Pool) TrafficRepository {
	return &trafficRepository{pool: pool}
}

func (r *trafficRepository) Insert(ctx context.Context, event *domain.TrafficEvent) error {
	const query = `
        INSERT INTO traffic_events (path, method, actor_role, actor_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.Path,
		event.Method,
		event.ActorRole,
		event.ActorID,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *trafficRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM traffic_events`).Scan(&total)
	return total, err
}

func (r *trafficRepository) TopPaths(ctx context.Context, limit int) ([]domain.PathCount, error) {
	const query = `
        SELECT path, COUNT(*) AS count
        FROM traffic_events
        GROUP BY path
        ORDER BY count DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PathCount
	for rows.Next() {
		var pc domain.PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, err
		}
		result = append(result, pc)
	}
	return result, rows.Err()
}

func (r *trafficRepository) RoleBreakdown(ctx context.Context) ([]domain.RoleCount, error) {
	const query = `
        SELECT actor_role, COUNT(*) AS count
        FROM traffic_events
        GROUP BY actor_role
        ORDER BY count DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoleCount
	for rows.Next() {
		var rc domain.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, err
		}
		result = append(result, rc)
	}
	return result, rows.Err()
}
