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

type PrivilegeRepository interface {
	Get(ctx context.Context, username string) (*domain.Balance, error)
	Purchase(ctx context.Context, username string, purchase domain.PurchaseRequest) (*domain.PurchaseResult, error)
	DeletePurchase(ctx context.Context, username, ticketUID string) error
}

// RESTPrivilegeRepository talks to the loyalty backend. Purchase records
// have no id of their own and are addressed by ticket_uid.
type RESTPrivilegeRepository struct {
	services *locator.Locator
}

func NewPrivilegeRepository(services *locator.Locator) PrivilegeRepository {
	return &RESTPrivilegeRepository{services: services}
}

func (r *RESTPrivilegeRepository) Get(ctx context.Context, username string) (*domain.Balance, error) {
	balance, err := requester.SendTyped[domain.Balance](ctx, r.services.Requester(), requester.Request{
		URL:     r.services.PrivilegeURL(),
		Method:  http.MethodGet,
		Headers: userHeaders(username),
	})
	if err != nil {
		return nil, wrap(domain.ErrPrivilegeNotFound, err)
	}
	return &balance, nil
}

func (r *RESTPrivilegeRepository) Purchase(ctx context.Context, username string, purchase domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	body, err := requester.JSON(purchase)
	if err != nil {
		return nil, err
	}
	result, err := requester.SendTyped[domain.PurchaseResult](ctx, r.services.Requester(), requester.Request{
		URL:     r.services.PrivilegeURL(),
		Method:  http.MethodPost,
		Headers: userHeaders(username),
		Body:    body,
	})
	if err != nil {
		return nil, wrap(domain.ErrPrivilegeNotFound, err)
	}
	return &result, nil
}

func (r *RESTPrivilegeRepository) DeletePurchase(ctx context.Context, username, ticketUID string) error {
	q := url.Values{}
	q.Set("ticket_uid", ticketUID)

	resp, err := r.services.Requester().Send(ctx, requester.Request{
		URL:     fmt.Sprintf("%s?%s", r.services.PrivilegeURL(), q.Encode()),
		Method:  http.MethodDelete,
		Headers: userHeaders(username),
	})
	if err := expectNoContent(resp, err); err != nil {
		return wrap(domain.ErrPrivilegeNotFound, err)
	}
	return nil
}

var _ PrivilegeRepository = (*RESTPrivilegeRepository)(nil)
