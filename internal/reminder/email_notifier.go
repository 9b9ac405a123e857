package reminder

import (
	"context"
	"library-lending/internal/event"
)

// EmailNotifier hands reminders to the mail transport through the event exchange.
type EmailNotifier struct {
	publisher event.EventPublisher
}

var _ Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(publisher event.EventPublisher) *EmailNotifier {
	if publisher == nil {
		panic("publisher cannot be nil")
	}
	return &EmailNotifier{publisher: publisher}
}

func (n *EmailNotifier) Send(ctx context.Context, address, subject, body string) error {
	return n.publisher.PublishEmailRequested(ctx, event.EmailRequestedEvent{
		To:      address,
		Subject: subject,
		Body:    body,
	})
}
