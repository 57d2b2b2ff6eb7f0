package flights

import (
	"context"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context, page, size int) (*domain.FlightPage, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

// FlightCache is optional; misses come back as (nil, nil).
type FlightCache interface {
	GetFlight(ctx context.Context, number string) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
	GetFlightPage(ctx context.Context, page, size int) (*domain.FlightPage, error)
	SetFlightPage(ctx context.Context, page, size int, flights *domain.FlightPage) error
}

type FlightService struct {
	repo   repository.FlightRepository
	cache  FlightCache
	logger *zap.Logger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithLogger(logger *zap.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.logger = logger
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List forwards paging to the catalog and returns its page as is.
func (s *FlightService) List(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlightPage(ctx, page, size); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Debug("flight page cache read failed", zap.Error(err))
		}
	}

	flights, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlightPage(ctx, page, size, flights); err != nil {
			s.logger.Debug("flight page cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlight(ctx, number); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Debug("flight cache read failed", zap.String("flight_number", number), zap.Error(err))
		}
	}

	flight, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			s.logger.Debug("flight cache write failed", zap.String("flight_number", number), zap.Error(err))
		}
	}
	return flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
