package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	client "github.com/mamadbah2/livestock-pricing/pkg/clients/whatsapp"
)

// Notifier pushes short operator messages.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// WhatsAppNotifier delivers messages to a fixed WhatsApp recipient.
type WhatsAppNotifier struct {
	client client.Client
	to     string
	logger *zap.Logger
}

// NewWhatsAppNotifier wires a notifier that sends every message to the given number.
func NewWhatsAppNotifier(c client.Client, to string, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{client: c, to: to, logger: logger}
}

// Notify sends message as a plain text WhatsApp message.
func (n *WhatsAppNotifier) Notify(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errors.New("notification message is empty")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := n.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   n.to,
		Body: message,
	})
	if err != nil {
		return fmt.Errorf("notify %s: %w", n.to, err)
	}

	if len(resp.Messages) > 0 {
		n.logger.Info("notification sent", zap.String("to", n.to), zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}

// Nop discards every message.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, string) error { return nil }
