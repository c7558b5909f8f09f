package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/loan-platform/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
	n.dispatcher.Subscribe(events.EventApplicationDecided, n.handleApplicationDecided)
	n.dispatcher.Subscribe(events.EventDocumentUploaded, n.handleDocumentUploaded)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleApplicationSubmitted(_ context.Context, event events.Event) error {
	n.logger.Info("ApplicationSubmitted", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleApplicationDecided(_ context.Context, event events.Event) error {
	n.logger.Info("ApplicationDecided", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleDocumentUploaded(_ context.Context, event events.Event) error {
	n.logger.Info("DocumentUploaded", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.Any("payload", event.Payload))
	return nil
}
