package privilege

import (
	"context"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/repository"
	"golang.org/x/sync/errgroup"
)

type PrivilegeUseCase interface {
	Get(ctx context.Context, username string) (*domain.Balance, error)
	Me(ctx context.Context, username string) (*domain.User, error)
}

// TicketLister is the enriched ticket read used by Me.
type TicketLister interface {
	List(ctx context.Context, username string) ([]domain.TicketResponse, error)
}

type PrivilegeService struct {
	privileges repository.PrivilegeRepository
	tickets    TicketLister
}

func NewPrivilegeService(privileges repository.PrivilegeRepository, tickets TicketLister) *PrivilegeService {
	return &PrivilegeService{privileges: privileges, tickets: tickets}
}

func (s *PrivilegeService) Get(ctx context.Context, username string) (*domain.Balance, error) {
	return s.privileges.Get(ctx, username)
}

// Me fetches the balance and the enriched tickets concurrently; either
// failure fails the whole view.
func (s *PrivilegeService) Me(ctx context.Context, username string) (*domain.User, error) {
	var (
		balance *domain.Balance
		tickets []domain.TicketResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = s.privileges.Get(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		tickets, err = s.tickets.List(gctx, username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if tickets == nil {
		tickets = []domain.TicketResponse{}
	}
	return &domain.User{Tickets: tickets, Privilege: *balance}, nil
}

var _ PrivilegeUseCase = (*PrivilegeService)(nil)
