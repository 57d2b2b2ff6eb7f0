package notify

import (
	"context"

	"github.com/Domenick1991/flightgateway/internal/kafka"
	"go.uber.org/zap"
)

// Notifier reports ticket events to operators. Gap events are raised at
// warn level since they need manual reconciliation.
type Notifier struct {
	logger *zap.Logger
}

func NewNotifier(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger}
}

func (n *Notifier) Send(_ context.Context, event kafka.TicketEvent) error {
	fields := []zap.Field{
		zap.String("type", event.Type),
		zap.String("ticket_uid", event.TicketUID),
		zap.String("username", event.Username),
		zap.String("flight_number", event.FlightNumber),
		zap.Int("price", event.Price),
		zap.Time("occurred_at", event.OccurredAt),
	}

	switch event.Type {
	case kafka.EventPurchaseDebitFailed, kafka.EventRefundFailed:
		n.logger.Warn("ticket needs reconciliation", append(fields, zap.String("error", event.Error))...)
	default:
		n.logger.Info("ticket event", fields...)
	}
	return nil
}
