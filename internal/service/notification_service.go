package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/config"
	"github.com/spec-kit/soporte-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventWorkItemCreated, n.handleCreated)
	n.dispatcher.Subscribe(events.EventWorkItemStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventPropagationFailed, n.handlePropagationFailed)
}

func (n *NotificationService) handleCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("WorkItemCreated",
		zap.String("collection", string(event.Collection)),
		zap.String("work_item_id", event.WorkItemID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("WorkItemStatusChanged",
		zap.String("collection", string(event.Collection)),
		zap.String("work_item_id", event.WorkItemID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// Propagation failures are the one case an operator should hear about even
// though the triggering mutation reported success.
func (n *NotificationService) handlePropagationFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("PropagationFailed",
		zap.String("work_item_id", event.WorkItemID),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("work_item_id", event.WorkItemID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("work_item_id", event.WorkItemID),
		zap.String("event_type", string(event.Type)))
}
