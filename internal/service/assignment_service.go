package service

import (
	"context"

	"github.com/spec-kit/loan-platform/internal/domain"
	"github.com/spec-kit/loan-platform/internal/repository"
	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// AssignmentService picks which admin should own a newly created ticket.
type AssignmentService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	UserRepo   repository.UserRepository
	TicketRepo repository.TicketRepository
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		users:   deps.UserRepo,
		tickets: deps.TicketRepo,
	}
}

// LeastLoadedAdminID returns the id of the admin with the fewest open or
// in-progress tickets, or nil when no admin-role user exists. The
// computation is a read snapshot with no locking: concurrent ticket
// creations may pick the same admin, which is an accepted imbalance.
func (s *AssignmentService) LeastLoadedAdminID(ctx context.Context) (*int64, error) {
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(admins) == 0 {
		return nil, nil
	}

	counts, err := s.tickets.OpenCountsByAdmin(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leastLoaded(admins, counts), nil
}

// leastLoaded selects the admin with the minimum count. Admins missing from
// counts carry zero load. Ties go to the first admin in enumeration order.
func leastLoaded(admins []domain.User, counts map[int64]int64) *int64 {
	if len(admins) == 0 {
		return nil
	}
	best := admins[0].ID
	bestCount := counts[best]
	for _, admin := range admins[1:] {
		if c := counts[admin.ID]; c < bestCount {
			best = admin.ID
			bestCount = c
		}
	}
	return &best
}
