package service

import (
	"context"
	"math"
	"testing"

	"github.com/spec-kit/loan-platform/internal/domain"
)

func TestComputePublicStats(t *testing.T) {
	stats := ComputePublicStats(domain.ApplicationStats{
		Total:     9,
		Approved:  3,
		Rejected:  2,
		Disbursed: 750000,
	})

	if stats.PendingApplications != 4 {
		t.Fatalf("expected 4 pending, got %d", stats.PendingApplications)
	}
	if stats.ApprovalRate != 33.33 {
		t.Fatalf("expected approval rate 33.33, got %v", stats.ApprovalRate)
	}
	if stats.TotalDisbursedAmount != 750000 {
		t.Fatalf("expected disbursed 750000, got %v", stats.TotalDisbursedAmount)
	}
}

func TestComputePublicStatsEmpty(t *testing.T) {
	stats := ComputePublicStats(domain.ApplicationStats{})
	if stats.ApprovalRate != 0 {
		t.Fatalf("expected zero approval rate, got %v", stats.ApprovalRate)
	}
	if stats.PendingApplications != 0 {
		t.Fatalf("expected zero pending, got %d", stats.PendingApplications)
	}
}

func TestComputePublicStatsFloorsNegativePending(t *testing.T) {
	stats := ComputePublicStats(domain.ApplicationStats{Total: 2, Approved: 2, Rejected: 1})
	if stats.PendingApplications != 0 {
		t.Fatalf("pending must never go negative, got %d", stats.PendingApplications)
	}
}

func TestTrafficAggregatesTicketCounts(t *testing.T) {
	tickets := newTicketRepoStub()
	for _, status := range []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
	} {
		if err := tickets.Create(context.Background(), &domain.Ticket{
			OwnerID: 1,
			Subject: "s",
			Message: "m",
			Status:  status,
		}); err != nil {
			t.Fatalf("seed ticket: %v", err)
		}
	}

	svc := NewAnalyticsService(AnalyticsDependencies{
		TrafficRepo: &trafficRepoStub{total: 12, paths: []domain.PathCount{{Path: "/api/public/stats", Count: 7}}},
		TicketRepo:  tickets,
	})

	report, err := svc.Traffic(context.Background())
	if err != nil {
		t.Fatalf("Traffic: %v", err)
	}
	if report.TotalAPIEvents != 12 {
		t.Fatalf("expected 12 events, got %d", report.TotalAPIEvents)
	}
	if report.OpenTickets != 2 || report.InProgressTickets != 1 || report.ResolvedTickets != 1 {
		t.Fatalf("unexpected ticket counts: %+v", report)
	}
	if len(report.TopPaths) != 1 || report.TopPaths[0].Path != "/api/public/stats" {
		t.Fatalf("unexpected top paths: %+v", report.TopPaths)
	}
}

func TestPublicStatsWithoutCacheHitsRepository(t *testing.T) {
	apps := newApplicationRepoStub()
	client := &domain.User{ID: 1, Role: domain.RoleClient}
	app := &domain.LoanApplication{ClientID: client.ID, LoanType: "Home Loan", Amount: 100000, Purpose: "p", Status: domain.ApplicationStatusApproved}
	if err := apps.Create(context.Background(), app, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	svc := NewAnalyticsService(AnalyticsDependencies{ApplicationRepo: apps})
	stats, err := svc.PublicStats(context.Background())
	if err != nil {
		t.Fatalf("PublicStats: %v", err)
	}
	if stats.TotalApplications != 1 || stats.ApprovedApplications != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if math.Abs(stats.ApprovalRate-100) > 1e-9 {
		t.Fatalf("expected 100%% approval, got %v", stats.ApprovalRate)
	}
}

type trafficRepoStub struct {
	total int64
	paths []domain.PathCount
	roles []domain.RoleCount
}

func (r *trafficRepoStub) Insert(context.Context, *domain.TrafficEvent) error { return nil }

func (r *trafficRepoStub) Count(context.Context) (int64, error) { return r.total, nil }

func (r *trafficRepoStub) TopPaths(_ context.Context, limit int) ([]domain.PathCount, error) {
	if limit < len(r.paths) {
		return r.paths[:limit], nil
	}
	return r.paths, nil
}

func (r *trafficRepoStub) RoleBreakdown(context.Context) ([]domain.RoleCount, error) {
	return r.roles, nil
}
