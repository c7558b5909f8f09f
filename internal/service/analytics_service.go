package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/repository"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

const (
	topPathsLimit    = 8
	publicStatsKey   = "loan-platform:public-stats"
	publicStatsCache = 30 * time.Second
)

// TrafficReport is the super-admin analytics aggregate.
type TrafficReport struct {
	TotalAPIEvents    int64              `json:"total_api_events"`
	TopPaths          []domain.PathCount `json:"top_paths"`
	RoleBreakdown     []domain.RoleCount `json:"role_breakdown"`
	OpenTickets       int64              `json:"open_tickets"`
	InProgressTickets int64              `json:"in_progress_tickets"`
	ResolvedTickets   int64              `json:"resolved_tickets"`
}

// PublicStats is the unauthenticated application aggregate.
type PublicStats struct {
	TotalApplications    int64   `json:"total_applications"`
	ApprovedApplications int64   `json:"approved_applications"`
	RejectedApplications int64   `json:"rejected_applications"`
	PendingApplications  int64   `json:"pending_applications"`
	ApprovalRate         float64 `json:"approval_rate"`
	TotalDisbursedAmount float64 `json:"total_disbursed_amount"`
}

// AnalyticsService provides read-side aggregation over applications,
// tickets and traffic events.
type AnalyticsService struct {
	traffic repository.TrafficRepository
	tickets repository.TicketRepository
	apps    repository.ApplicationRepository
	cache   *redis.Client
	logger  *zap.Logger
}

// AnalyticsDependencies bundles requirements for the analytics service.
type AnalyticsDependencies struct {
	TrafficRepo     repository.TrafficRepository
	TicketRepo      repository.TicketRepository
	ApplicationRepo repository.ApplicationRepository
	Cache           *redis.Client
	Logger          *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	return &AnalyticsService{
		traffic: deps.TrafficRepo,
		tickets: deps.TicketRepo,
		apps:    deps.ApplicationRepo,
		cache:   deps.Cache,
		logger:  deps.Logger,
	}
}

// Traffic aggregates API traffic and ticket status counts.
func (s *AnalyticsService) Traffic(ctx context.Context) (*TrafficReport, error) {
	total, err := s.traffic.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	topPaths, err := s.traffic.TopPaths(ctx, topPathsLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	roles, err := s.traffic.RoleBreakdown(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	statusCounts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &TrafficReport{
		TotalAPIEvents:    total,
		TopPaths:          topPaths,
		RoleBreakdown:     roles,
		OpenTickets:       statusCounts[domain.TicketStatusOpen],
		InProgressTickets: statusCounts[domain.TicketStatusInProgress],
		ResolvedTickets:   statusCounts[domain.TicketStatusResolved],
	}, nil
}

// PublicStats computes the public application aggregate, served from a short
// Redis cache when available. Cache failures fall through to the database.
func (s *AnalyticsService) PublicStats(ctx context.Context) (*PublicStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	raw, err := s.apps.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stats := ComputePublicStats(raw)
	s.storeStats(ctx, stats)
	return stats, nil
}

// ComputePublicStats derives the published aggregate from raw counts.
// Pending is floored at zero to guard against transient inconsistency.
func ComputePublicStats(raw domain.ApplicationStats) *PublicStats {
	pending := raw.Total - raw.Approved - raw.Rejected
	if pending < 0 {
		pending = 0
	}
	rate := 0.0
	if raw.Total > 0 {
		rate = round2(float64(raw.Approved) / float64(raw.Total) * 100)
	}
	return &PublicStats{
		TotalApplications:    raw.Total,
		ApprovedApplications: raw.Approved,
		RejectedApplications: raw.Rejected,
		PendingApplications:  pending,
		ApprovalRate:         rate,
		TotalDisbursedAmount: raw.Disbursed,
	}
}

func (s *AnalyticsService) cachedStats(ctx context.Context) *PublicStats {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, publicStatsKey).Bytes()
	if err != nil {
		if err != redis.Nil && s.logger != nil {
			s.logger.Warn("public stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats PublicStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *AnalyticsService) storeStats(ctx context.Context, stats *PublicStats) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, publicStatsKey, payload, publicStatsCache).Err(); err != nil && s.logger != nil {
		s.logger.Warn("public stats cache write failed", zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
