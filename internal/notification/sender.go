// File: internal/notification/sender.go
package notification

import (
	"context"

	"go.uber.org/zap"
)

// Message is a templated notification addressed to a single recipient.
type Message struct {
	To       string
	Template string
	Data     map[string]string
}

// Sender delivers templated messages, fire-and-forget. Callers never block on
// or fail because of delivery.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type logSender struct {
	logger *zap.Logger
}

// NewLogSender returns a Sender that records deliveries in the application
// log. Production deployments swap in a real provider behind the same
// interface.
func NewLogSender(logger *zap.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("Notification dispatched",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
		zap.Any("data", msg.Data),
	)
	return nil
}
