package service

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/loan-platform/internal/domain"
)

type userRepoStub struct {
	nextID int64
	users  map[int64]*domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[int64]*domain.User{}}
}

func (r *userRepoStub) add(user domain.User) *domain.User {
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *userRepoStub) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *userRepoStub) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *userRepoStub) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepoStub) ListAdmins(_ context.Context) ([]domain.User, error) {
	admins := make([]domain.User, 0)
	for _, user := range r.users {
		if user.Role.IsAdmin() {
			admins = append(admins, *user)
		}
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

type ticketRepoStub struct {
	nextID  int64
	tickets map[int64]*domain.Ticket
}

func newTicketRepoStub() *ticketRepoStub {
	return &ticketRepoStub{tickets: map[int64]*domain.Ticket{}}
}

func (r *ticketRepoStub) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = r.nextID
	stored := *ticket
	r.tickets[stored.ID] = &stored
	return nil
}

func (r *ticketRepoStub) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *ticketRepoStub) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	return nil
}

func (r *ticketRepoStub) ListByOwner(_ context.Context, ownerID int64) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.OwnerID == ownerID {
			out = append(out, *ticket)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ticketRepoStub) ListAll(_ context.Context) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		out = append(out, *ticket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ticketRepoStub) OpenCountsByAdmin(_ context.Context) (map[int64]int64, error) {
	counts := map[int64]int64{}
	for _, ticket := range r.tickets {
		if ticket.AssignedAdminID == nil {
			continue
		}
		if ticket.Status == domain.TicketStatusOpen || ticket.Status == domain.TicketStatusInProgress {
			counts[*ticket.AssignedAdminID]++
		}
	}
	return counts, nil
}

func (r *ticketRepoStub) CountByStatus(_ context.Context) (map[domain.TicketStatus]int64, error) {
	counts := map[domain.TicketStatus]int64{}
	for _, ticket := range r.tickets {
		counts[ticket.Status]++
	}
	return counts, nil
}

type applicationRepoStub struct {
	nextID int64
	apps   map[int64]*domain.LoanApplication
}

func newApplicationRepoStub() *applicationRepoStub {
	return &applicationRepoStub{apps: map[int64]*domain.LoanApplication{}}
}

func (r *applicationRepoStub) Create(_ context.Context, app *domain.LoanApplication, documents []string) error {
	r.nextID++
	app.ID = r.nextID
	app.Documents = append([]string(nil), documents...)
	stored := *app
	stored.Documents = append([]string(nil), documents...)
	r.apps[stored.ID] = &stored
	return nil
}

func (r *applicationRepoStub) GetByID(_ context.Context, id int64) (*domain.LoanApplication, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *app
	copied.Documents = append([]string(nil), app.Documents...)
	copied.AdditionalDocuments = append([]string(nil), app.AdditionalDocuments...)
	return &copied, nil
}

func (r *applicationRepoStub) ListByClient(ctx context.Context, clientID int64) ([]domain.LoanApplication, error) {
	out := make([]domain.LoanApplication, 0)
	for id, app := range r.apps {
		if app.ClientID != clientID {
			continue
		}
		copied, _ := r.GetByID(ctx, id)
		out = append(out, *copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *applicationRepoStub) ListAll(ctx context.Context) ([]domain.LoanApplication, error) {
	out := make([]domain.LoanApplication, 0, len(r.apps))
	for id := range r.apps {
		copied, _ := r.GetByID(ctx, id)
		out = append(out, *copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *applicationRepoStub) UpdateDecision(_ context.Context, app *domain.LoanApplication) error {
	stored, ok := r.apps[app.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = app.Status
	stored.AdminNote = app.AdminNote
	stored.RequiresAdditionalDocs = app.RequiresAdditionalDocs
	stored.RequiredDocsNote = app.RequiredDocsNote
	return nil
}

func (r *applicationRepoStub) AppendAdditionalDocument(_ context.Context, appID int64, fileName string) error {
	stored, ok := r.apps[appID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.AdditionalDocuments = append(stored.AdditionalDocuments, fileName)
	stored.RequiresAdditionalDocs = false
	stored.RequiredDocsNote = ""
	return nil
}

func (r *applicationRepoStub) Stats(_ context.Context) (domain.ApplicationStats, error) {
	var stats domain.ApplicationStats
	for _, app := range r.apps {
		stats.Total++
		switch app.Status {
		case domain.ApplicationStatusApproved:
			stats.Approved++
			stats.Disbursed += app.Amount
		case domain.ApplicationStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
