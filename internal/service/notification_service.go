package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/events"
)

// Notifier delivers a short, non-blocking notice to the user. The console
// implementation lives with the entry point; a UI would show a toast.
type Notifier interface {
	Notify(message string)
}

// NotificationService translates engine events into user-facing notices.
type NotificationService struct {
	dispatcher events.Dispatcher
	notifier   Notifier
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, notifier Notifier, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to engine events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventNewTicketsArrived, n.handleNewTickets)
	n.dispatcher.Subscribe(events.EventTicketsRefreshed, n.handleRefreshed)
	n.dispatcher.Subscribe(events.EventRefreshFailed, n.handleRefreshFailed)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
}

func (n *NotificationService) handleNewTickets(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.NewTicketsArrivedPayload)
	if !ok {
		return nil
	}
	n.notifier.Notify(fmt.Sprintf("%d new ticket(s)!", payload.Count))
	return nil
}

func (n *NotificationService) handleRefreshed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketsRefreshedPayload)
	if !ok {
		return nil
	}
	// Ambient polling stays quiet; only a user-initiated refresh confirms
	// completion.
	if payload.Manual {
		n.notifier.Notify("Refreshed!")
	}
	return nil
}

func (n *NotificationService) handleRefreshFailed(ctx context.Context, event events.Event) error {
	n.notifier.Notify("Failed to load tickets")
	n.logger.Debug("refresh failure notified", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	n.notifier.Notify("Updated!")
	return nil
}
