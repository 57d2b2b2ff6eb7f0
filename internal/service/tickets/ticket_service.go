package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/kafka"
	"github.com/Domenick1991/flightgateway/internal/repository"
	"go.uber.org/zap"
)

type TicketUseCase interface {
	List(ctx context.Context, username string) ([]domain.TicketResponse, error)
	Get(ctx context.Context, username, ticketUID string) (*domain.TicketResponse, error)
	Purchase(ctx context.Context, username string, input domain.PurchaseInput) (*domain.CombinedPurchaseResponse, error)
	Cancel(ctx context.Context, username, ticketUID string) error
}

const defaultPublishTimeout = 5 * time.Second

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// TicketService coordinates the reservation and loyalty backends. There is
// no compensation: a failed loyalty step leaves the reservation side as is.
type TicketService struct {
	tickets        repository.TicketRepository
	privileges     repository.PrivilegeRepository
	enricher       *Enricher
	producer       Producer
	eventsTopic    string
	publishTimeout time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

type TicketServiceOption func(*TicketService)

// WithEvents publishes saga outcomes to topic.
func WithEvents(producer Producer, topic string) TicketServiceOption {
	return func(s *TicketService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

// WithPublishTimeout bounds each event write. Non-positive keeps the default.
func WithPublishTimeout(timeout time.Duration) TicketServiceOption {
	return func(s *TicketService) {
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

func WithLogger(logger *zap.Logger) TicketServiceOption {
	return func(s *TicketService) {
		s.logger = logger
	}
}

func NewTicketService(
	tickets repository.TicketRepository,
	privileges repository.PrivilegeRepository,
	enricher *Enricher,
	opts ...TicketServiceOption,
) *TicketService {
	s := &TicketService{
		tickets:        tickets,
		privileges:     privileges,
		enricher:       enricher,
		publishTimeout: defaultPublishTimeout,
		logger:         zap.NewNop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TicketService) List(ctx context.Context, username string) ([]domain.TicketResponse, error) {
	tickets, err := s.tickets.List(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichList(ctx, tickets)
}

func (s *TicketService) Get(ctx context.Context, username, ticketUID string) (*domain.TicketResponse, error) {
	ticket, err := s.tickets.Get(ctx, username, ticketUID)
	if err != nil {
		return nil, err
	}
	return s.enricher.Enrich(ctx, *ticket)
}

// Purchase creates the ticket, debits the loyalty account for it, then
// builds the combined view. Each step needs the previous one's result.
func (s *TicketService) Purchase(ctx context.Context, username string, input domain.PurchaseInput) (*domain.CombinedPurchaseResponse, error) {
	ticket, err := s.tickets.Create(ctx, username, domain.TicketCreate{
		FlightNumber: input.FlightNumber,
		Price:        input.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	purchase, err := s.privileges.Purchase(ctx, username, domain.PurchaseRequest{
		TicketUID:       ticket.TicketUID,
		Price:           ticket.Price,
		PaidFromBalance: input.PaidFromBalance,
	})
	if err != nil {
		s.logger.Warn("loyalty debit failed, ticket kept without purchase record",
			zap.String("ticket_uid", ticket.TicketUID),
			zap.String("username", username),
			zap.Error(err))
		s.publish(ctx, kafka.TicketEvent{
			Type:         kafka.EventPurchaseDebitFailed,
			TicketUID:    ticket.TicketUID,
			Username:     username,
			FlightNumber: ticket.FlightNumber,
			Price:        ticket.Price,
			Error:        err.Error(),
		})
		return nil, fmt.Errorf("debit balance for ticket %s: %w", ticket.TicketUID, err)
	}

	view, err := s.enricher.Enrich(ctx, *ticket)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.TicketEvent{
		Type:          kafka.EventTicketPurchased,
		TicketUID:     ticket.TicketUID,
		Username:      username,
		FlightNumber:  ticket.FlightNumber,
		Price:         ticket.Price,
		PaidByMoney:   purchase.PaidByMoney,
		PaidByBonuses: purchase.PaidByBonuses,
	})

	return &domain.CombinedPurchaseResponse{
		TicketUID:     ticket.TicketUID,
		FlightNumber:  view.FlightNumber,
		FromAirport:   view.FromAirport,
		ToAirport:     view.ToAirport,
		Date:          view.Date,
		Price:         ticket.Price,
		PaidByMoney:   purchase.PaidByMoney,
		PaidByBonuses: purchase.PaidByBonuses,
		Status:        ticket.Status,
		Privilege: domain.Balance{
			Balance: purchase.Balance,
			Status:  purchase.Status,
		},
	}, nil
}

// Cancel is only valid from PAID. The loyalty refund is requested only after
// the reservation backend confirmed the delete.
func (s *TicketService) Cancel(ctx context.Context, username, ticketUID string) error {
	ticket, err := s.tickets.Get(ctx, username, ticketUID)
	if err != nil {
		return err
	}
	if ticket.Status != domain.TicketStatusPaid {
		return fmt.Errorf("cancel ticket %s in status %s: %w", ticketUID, ticket.Status, domain.ErrTicketNotPaid)
	}

	if err := s.tickets.Delete(ctx, username, ticketUID); err != nil {
		return fmt.Errorf("cancel ticket %s: %w", ticketUID, err)
	}

	if err := s.privileges.DeletePurchase(ctx, username, ticketUID); err != nil {
		s.logger.Warn("loyalty refund failed, ticket already cancelled",
			zap.String("ticket_uid", ticketUID),
			zap.String("username", username),
			zap.Error(err))
		s.publish(ctx, kafka.TicketEvent{
			Type:         kafka.EventRefundFailed,
			TicketUID:    ticketUID,
			Username:     username,
			FlightNumber: ticket.FlightNumber,
			Price:        ticket.Price,
			Error:        err.Error(),
		})
		return fmt.Errorf("refund ticket %s: %w", ticketUID, err)
	}

	s.publish(ctx, kafka.TicketEvent{
		Type:         kafka.EventTicketCancelled,
		TicketUID:    ticketUID,
		Username:     username,
		FlightNumber: ticket.FlightNumber,
		Price:        ticket.Price,
	})
	return nil
}

// publish is best effort and outlives a disconnected caller, but never
// holds the response longer than publishTimeout.
func (s *TicketService) publish(ctx context.Context, event kafka.TicketEvent) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event.OccurredAt = s.now().UTC()

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.producer.Publish(pubCtx, s.eventsTopic, event.TicketUID, event); err != nil {
		s.logger.Warn("failed to publish ticket event",
			zap.String("type", event.Type),
			zap.String("ticket_uid", event.TicketUID),
			zap.Error(err))
	}
}

var _ TicketUseCase = (*TicketService)(nil)
