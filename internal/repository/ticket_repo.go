package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/locator"
	"github.com/Domenick1991/flightgateway/internal/requester"
)

type TicketRepository interface {
	List(ctx context.Context, username string) ([]domain.Ticket, error)
	Get(ctx context.Context, username, ticketUID string) (*domain.Ticket, error)
	Create(ctx context.Context, username string, ticket domain.TicketCreate) (*domain.Ticket, error)
	Delete(ctx context.Context, username, ticketUID string) error
}

// RESTTicketRepository talks to the reservation backend on behalf of a user.
type RESTTicketRepository struct {
	services *locator.Locator
}

func NewTicketRepository(services *locator.Locator) TicketRepository {
	return &RESTTicketRepository{services: services}
}

func (r *RESTTicketRepository) ticketURL(ticketUID string) string {
	return fmt.Sprintf("%s/%s", r.services.TicketsURL(), url.PathEscape(ticketUID))
}

func (r *RESTTicketRepository) List(ctx context.Context, username string) ([]domain.Ticket, error) {
	tickets, err := requester.SendTyped[[]domain.Ticket](ctx, r.services.Requester(), requester.Request{
		URL:     r.services.TicketsURL(),
		Method:  http.MethodGet,
		Headers: userHeaders(username),
	})
	if err != nil {
		return nil, wrap(domain.ErrTicketNotFound, err)
	}
	return tickets, nil
}

func (r *RESTTicketRepository) Get(ctx context.Context, username, ticketUID string) (*domain.Ticket, error) {
	ticket, err := requester.SendTyped[domain.Ticket](ctx, r.services.Requester(), requester.Request{
		URL:     r.ticketURL(ticketUID),
		Method:  http.MethodGet,
		Headers: userHeaders(username),
	})
	if err != nil {
		return nil, wrap(domain.ErrTicketNotFound, err)
	}
	return &ticket, nil
}

func (r *RESTTicketRepository) Create(ctx context.Context, username string, ticket domain.TicketCreate) (*domain.Ticket, error) {
	body, err := requester.JSON(ticket)
	if err != nil {
		return nil, err
	}
	created, err := requester.SendTyped[domain.Ticket](ctx, r.services.Requester(), requester.Request{
		URL:     r.services.TicketsURL(),
		Method:  http.MethodPost,
		Headers: userHeaders(username),
		Body:    body,
	})
	if err != nil {
		return nil, wrap(domain.ErrNotFound, err)
	}
	return &created, nil
}

func (r *RESTTicketRepository) Delete(ctx context.Context, username, ticketUID string) error {
	resp, err := r.services.Requester().Send(ctx, requester.Request{
		URL:     r.ticketURL(ticketUID),
		Method:  http.MethodDelete,
		Headers: userHeaders(username),
	})
	if err := expectNoContent(resp, err); err != nil {
		return wrap(domain.ErrTicketNotFound, err)
	}
	return nil
}

var _ TicketRepository = (*RESTTicketRepository)(nil)
