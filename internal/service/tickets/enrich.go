package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"golang.org/x/sync/errgroup"
)

const defaultEnrichConcurrency = 8

type FlightLookup interface {
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

// Enricher merges reservation tickets with their catalog flights.
type Enricher struct {
	flights     FlightLookup
	concurrency int
}

func NewEnricher(flights FlightLookup, concurrency int) *Enricher {
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}
	return &Enricher{flights: flights, concurrency: concurrency}
}

// Enrich takes identity and status from the ticket and route, date and
// price from the flight. Any lookup failure is ErrFlightNotFound.
func (e *Enricher) Enrich(ctx context.Context, ticket domain.Ticket) (*domain.TicketResponse, error) {
	flight, err := e.flights.GetByNumber(ctx, ticket.FlightNumber)
	if err != nil {
		if !errors.Is(err, domain.ErrFlightNotFound) {
			err = fmt.Errorf("%w: %w", domain.ErrFlightNotFound, err)
		}
		return nil, fmt.Errorf("enrich ticket %s: %w", ticket.TicketUID, err)
	}

	return &domain.TicketResponse{
		TicketUID:    ticket.TicketUID,
		FlightNumber: flight.FlightNumber,
		FromAirport:  flight.FromAirport,
		ToAirport:    flight.ToAirport,
		Date:         flight.Date,
		Price:        flight.Price,
		Status:       ticket.Status,
	}, nil
}

// EnrichList is all-or-nothing: lookups run concurrently, results keep the
// input order, and the first failure discards the whole list.
func (e *Enricher) EnrichList(ctx context.Context, tickets []domain.Ticket) ([]domain.TicketResponse, error) {
	out := make([]domain.TicketResponse, len(tickets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, ticket := range tickets {
		g.Go(func() error {
			resp, err := e.Enrich(gctx, ticket)
			if err != nil {
				return err
			}
			out[i] = *resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
