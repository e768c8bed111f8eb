package worker

import (
	"context"

	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/observability"
	"github.com/Behnamfe76/officedesk/internal/service"
)

// StartNotificationWorker registers the post-commit handlers: inbox cache
// invalidation and event counters.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, metrics *observability.Metrics) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher == nil || metrics == nil {
		return
	}
	for _, t := range events.AllEventTypes {
		dispatcher.Subscribe(t, func(_ context.Context, event events.Event) error {
			metrics.RecordEvent(string(event.Type))
			return nil
		})
	}
}
