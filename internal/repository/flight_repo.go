package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/locator"
	"github.com/Domenick1991/flightgateway/internal/requester"
)

type FlightRepository interface {
	List(ctx context.Context, page, size int) (*domain.FlightPage, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

// RESTFlightRepository reads the flight catalog backend.
type RESTFlightRepository struct {
	services *locator.Locator
}

func NewFlightRepository(services *locator.Locator) FlightRepository {
	return &RESTFlightRepository{services: services}
}

func (r *RESTFlightRepository) List(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	flights, err := requester.SendTyped[domain.FlightPage](ctx, r.services.Requester(), requester.Request{
		URL:    fmt.Sprintf("%s?%s", r.services.FlightsURL(), q.Encode()),
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, wrap(domain.ErrNotFound, err)
	}
	return &flights, nil
}

func (r *RESTFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	flight, err := requester.SendTyped[domain.Flight](ctx, r.services.Requester(), requester.Request{
		URL:    fmt.Sprintf("%s/%s", r.services.FlightsURL(), url.PathEscape(number)),
		Method: http.MethodGet,
	})
	if err != nil {
		return nil, wrap(domain.ErrFlightNotFound, err)
	}
	return &flight, nil
}

var _ FlightRepository = (*RESTFlightRepository)(nil)
