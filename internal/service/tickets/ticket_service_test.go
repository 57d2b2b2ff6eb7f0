package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const eventsTopic = "ticket-events"

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	tickets    *MockTicketRepository
	privileges *MockPrivilegeRepository
	flights    *MockFlightLookup
	producer   *MockProducer
	service    *TicketService
}

func newFixture() *fixture {
	f := &fixture{
		tickets:    &MockTicketRepository{},
		privileges: &MockPrivilegeRepository{},
		flights:    &MockFlightLookup{},
		producer:   &MockProducer{},
	}
	f.service = NewTicketService(f.tickets, f.privileges, NewEnricher(f.flights, 0), WithEvents(f.producer, eventsTopic))
	f.service.now = func() time.Time { return fixedNow }
	return f
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e kafka.TicketEvent) bool { return e.Type == eventType })
}

func TestTicketService_List(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("List", ctx, "alice").Return([]domain.Ticket{
		{TicketUID: "t1", FlightNumber: "FL1", Price: 1000, Status: domain.TicketStatusPaid},
	}, nil).Once()
	f.flights.On("GetByNumber", mock.Anything, "FL1").Return(fl1(), nil).Once()

	got, err := f.service.List(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, []domain.TicketResponse{{
		TicketUID: "t1", FlightNumber: "FL1", FromAirport: "A", ToAirport: "B",
		Date: "2024-01-01", Price: 1000, Status: domain.TicketStatusPaid,
	}}, got)
	f.tickets.AssertExpectations(t)
	f.flights.AssertExpectations(t)
}

func TestTicketService_List_TicketsUnavailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("List", ctx, "alice").Return(nil, domain.ErrTicketNotFound).Once()

	got, err := f.service.List(ctx, "alice")

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.flights.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
}

func TestTicketService_Get(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Get", ctx, "alice", "t1").Return(&domain.Ticket{TicketUID: "t1", FlightNumber: "FL1", Status: domain.TicketStatusCancelled}, nil).Once()
	f.flights.On("GetByNumber", mock.Anything, "FL1").Return(fl1(), nil).Once()

	got, err := f.service.Get(ctx, "alice", "t1")

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, got.Status)
	assert.Equal(t, 1000, got.Price)
}

func TestTicketService_Get_FlightMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Get", ctx, "alice", "t1").Return(&domain.Ticket{TicketUID: "t1", FlightNumber: "FL1"}, nil).Once()
	f.flights.On("GetByNumber", mock.Anything, "FL1").Return(nil, domain.ErrFlightNotFound).Once()

	got, err := f.service.Get(ctx, "alice", "t1")

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrFlightNotFound))
}

func TestTicketService_Purchase_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created := &domain.Ticket{TicketUID: "t2", FlightNumber: "FL1", Price: 500, Status: domain.TicketStatusPaid}
	f.tickets.On("Create", ctx, "alice", domain.TicketCreate{FlightNumber: "FL1", Price: 500}).Return(created, nil).Once()
	f.privileges.On("Purchase", ctx, "alice", domain.PurchaseRequest{TicketUID: "t2", Price: 500, PaidFromBalance: true}).
		Return(&domain.PurchaseResult{PaidByMoney: 0, PaidByBonuses: 500, Balance: 50, Status: "GOLD"}, nil).Once()
	f.flights.On("GetByNumber", mock.Anything, "FL1").Return(fl1(), nil).Once()
	f.producer.On("Publish", mock.Anything, eventsTopic, "t2", eventOfType(kafka.EventTicketPurchased)).Return(nil).Once()

	got, err := f.service.Purchase(ctx, "alice", domain.PurchaseInput{FlightNumber: "FL1", Price: 500, PaidFromBalance: true})

	require.NoError(t, err)
	assert.Equal(t, &domain.CombinedPurchaseResponse{
		TicketUID:     "t2",
		FlightNumber:  "FL1",
		FromAirport:   "A",
		ToAirport:     "B",
		Date:          "2024-01-01",
		Price:         500,
		PaidByMoney:   0,
		PaidByBonuses: 500,
		Status:        domain.TicketStatusPaid,
		Privilege:     domain.Balance{Balance: 50, Status: "GOLD"},
	}, got)
	assert.Equal(t, got.Price, got.PaidByMoney+got.PaidByBonuses)

	f.tickets.AssertExpectations(t)
	f.privileges.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestTicketService_Purchase_CreateFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Create", ctx, "alice", mock.Anything).Return(nil, domain.ErrNotFound).Once()

	got, err := f.service.Purchase(ctx, "alice", domain.PurchaseInput{FlightNumber: "FL1", Price: 500})

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.privileges.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_Purchase_DebitFailsLeavesTicket(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created := &domain.Ticket{TicketUID: "t2", FlightNumber: "FL1", Price: 500, Status: domain.TicketStatusPaid}
	f.tickets.On("Create", ctx, "alice", mock.Anything).Return(created, nil).Once()
	f.privileges.On("Purchase", ctx, "alice", mock.Anything).Return(nil, domain.ErrPrivilegeNotFound).Once()
	f.producer.On("Publish", mock.Anything, eventsTopic, "t2", eventOfType(kafka.EventPurchaseDebitFailed)).Return(nil).Once()

	got, err := f.service.Purchase(ctx, "alice", domain.PurchaseInput{FlightNumber: "FL1", Price: 500})

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.tickets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	f.flights.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
	f.producer.AssertExpectations(t)
}

func TestTicketService_Purchase_PublishFailureDoesNotFailPurchase(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created := &domain.Ticket{TicketUID: "t2", FlightNumber: "FL1", Price: 1000, Status: domain.TicketStatusPaid}
	f.tickets.On("Create", ctx, "alice", mock.Anything).Return(created, nil).Once()
	f.privileges.On("Purchase", ctx, "alice", mock.Anything).
		Return(&domain.PurchaseResult{PaidByMoney: 1000, PaidByBonuses: 0, Balance: 150, Status: "BRONZE"}, nil).Once()
	f.flights.On("GetByNumber", mock.Anything, "FL1").Return(fl1(), nil).Once()
	f.producer.On("Publish", mock.Anything, eventsTopic, "t2", mock.Anything).Return(errors.New("broker down")).Once()

	got, err := f.service.Purchase(ctx, "alice", domain.PurchaseInput{FlightNumber: "FL1", Price: 1000})

	require.NoError(t, err)
	assert.Equal(t, 1000, got.PaidByMoney)
}

func TestTicketService_Purchase_SlowBrokerIsBounded(t *testing.T) {
	tickets := &MockTicketRepository{}
	privileges := &MockPrivilegeRepository{}
	flights := &MockFlightLookup{}
	producer := &MockProducer{}
	service := NewTicketService(tickets, privileges, NewEnricher(flights, 0),
		WithEvents(producer, eventsTopic), WithPublishTimeout(20*time.Millisecond))

	reqCtx, cancelReq := context.WithCancel(context.Background())
	tickets.On("Create", reqCtx, "alice", mock.Anything).
		Return(&domain.Ticket{TicketUID: "t2", FlightNumber: "FL1", Price: 1000, Status: domain.TicketStatusPaid}, nil).Once()
	privileges.On("Purchase", reqCtx, "alice", mock.Anything).
		Return(&domain.PurchaseResult{PaidByMoney: 1000, Status: "BRONZE"}, nil).Once()
	flights.On("GetByNumber", mock.Anything, "FL1").Return(fl1(), nil).Once()

	var publishErr error
	producer.On("Publish", mock.Anything, eventsTopic, "t2", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			// a canceled caller must not cut the write short
			cancelReq()
			<-ctx.Done()
			publishErr = ctx.Err()
		}).
		Return(errors.New("broker down")).Once()

	start := time.Now()
	got, err := service.Purchase(reqCtx, "alice", domain.PurchaseInput{FlightNumber: "FL1", Price: 1000})

	require.NoError(t, err)
	assert.Equal(t, "t2", got.TicketUID)
	assert.ErrorIs(t, publishErr, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestTicketService_Purchase_WithoutEvents(t *testing.T) {
	tickets := &MockTicketRepository{}
	privileges := &MockPrivilegeRepository{}
	flights := &MockFlightLookup{}
	service := NewTicketService(tickets, privileges, NewEnricher(flights, 0))
	ctx := context.Background()

	tickets.On("Create", ctx, "alice", mock.Anything).Return(&domain.Ticket{TicketUID: "t2", FlightNumber: "FL1", Price: 1000}, nil).Once()
	privileges.On("Purchase", ctx, "alice", mock.Anything).Return(&domain.PurchaseResult{PaidByMoney: 1000}, nil).Once()
	flights.On("GetByNumber", mock.Anything, "FL1").Return(fl1(), nil).Once()

	got, err := service.Purchase(ctx, "alice", domain.PurchaseInput{FlightNumber: "FL1", Price: 1000})

	require.NoError(t, err)
	assert.Equal(t, "t2", got.TicketUID)
}

func TestTicketService_Cancel_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Get", ctx, "alice", "t4").Return(&domain.Ticket{TicketUID: "t4", FlightNumber: "FL1", Status: domain.TicketStatusPaid}, nil).Once()
	f.tickets.On("Delete", ctx, "alice", "t4").Return(nil).Once()
	f.privileges.On("DeletePurchase", ctx, "alice", "t4").Return(nil).Once()
	f.producer.On("Publish", mock.Anything, eventsTopic, "t4", eventOfType(kafka.EventTicketCancelled)).Return(nil).Once()

	err := f.service.Cancel(ctx, "alice", "t4")

	require.NoError(t, err)
	f.tickets.AssertExpectations(t)
	f.privileges.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestTicketService_Cancel_NotPaid(t *testing.T) {
	for _, status := range []domain.TicketStatus{domain.TicketStatusCancelled, "REFUNDED", ""} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			f.tickets.On("Get", ctx, "alice", "t3").Return(&domain.Ticket{TicketUID: "t3", Status: status}, nil).Once()

			err := f.service.Cancel(ctx, "alice", "t3")

			assert.True(t, errors.Is(err, domain.ErrBadRequest))
			f.tickets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			f.privileges.AssertNotCalled(t, "DeletePurchase", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTicketService_Cancel_TicketMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Get", ctx, "alice", "t9").Return(nil, domain.ErrTicketNotFound).Once()

	err := f.service.Cancel(ctx, "alice", "t9")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrBadRequest))
	f.tickets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_Cancel_TicketDeleteFailsSkipsRefund(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Get", ctx, "alice", "t4").Return(&domain.Ticket{TicketUID: "t4", Status: domain.TicketStatusPaid}, nil).Once()
	f.tickets.On("Delete", ctx, "alice", "t4").Return(domain.ErrTicketNotFound).Once()

	err := f.service.Cancel(ctx, "alice", "t4")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.privileges.AssertNotCalled(t, "DeletePurchase", mock.Anything, mock.Anything, mock.Anything)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_Cancel_RefundFailsKeepsCancellation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tickets.On("Get", ctx, "alice", "t4").Return(&domain.Ticket{TicketUID: "t4", FlightNumber: "FL1", Price: 1000, Status: domain.TicketStatusPaid}, nil).Once()
	f.tickets.On("Delete", ctx, "alice", "t4").Return(nil).Once()
	f.privileges.On("DeletePurchase", ctx, "alice", "t4").Return(domain.ErrPrivilegeNotFound).Once()
	f.producer.On("Publish", mock.Anything, eventsTopic, "t4", mock.MatchedBy(func(e kafka.TicketEvent) bool {
		return e.Type == kafka.EventRefundFailed && e.Username == "alice" && e.OccurredAt.Equal(fixedNow)
	})).Return(nil).Once()

	err := f.service.Cancel(ctx, "alice", "t4")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.tickets.AssertNumberOfCalls(t, "Delete", 1)
	f.producer.AssertExpectations(t)
}
