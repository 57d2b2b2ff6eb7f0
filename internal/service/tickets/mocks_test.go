package tickets

import (
	"context"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) List(ctx context.Context, username string) ([]domain.Ticket, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Get(ctx context.Context, username, ticketUID string) (*domain.Ticket, error) {
	args := m.Called(ctx, username, ticketUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Create(ctx context.Context, username string, ticket domain.TicketCreate) (*domain.Ticket, error) {
	args := m.Called(ctx, username, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Delete(ctx context.Context, username, ticketUID string) error {
	args := m.Called(ctx, username, ticketUID)
	return args.Error(0)
}

type MockPrivilegeRepository struct {
	mock.Mock
}

func (m *MockPrivilegeRepository) Get(ctx context.Context, username string) (*domain.Balance, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockPrivilegeRepository) Purchase(ctx context.Context, username string, purchase domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, username, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockPrivilegeRepository) DeletePurchase(ctx context.Context, username, ticketUID string) error {
	args := m.Called(ctx, username, ticketUID)
	return args.Error(0)
}

type MockFlightLookup struct {
	mock.Mock
}

func (m *MockFlightLookup) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
