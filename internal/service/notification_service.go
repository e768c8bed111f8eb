package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// UnreadCache caches per-user unread counts. Implementations must tolerate
// an unreachable backend.
type UnreadCache interface {
	Get(ctx context.Context, username string) (int64, bool)
	Set(ctx context.Context, username string, count int64)
	Invalidate(ctx context.Context, usernames ...string)
}

// NotificationService serves the polled inbox and reacts to committed events.
type NotificationService struct {
	notifications repository.NotificationRepository
	staff         repository.StaffRepository
	dispatcher    events.Dispatcher
	cache         UnreadCache
	logger        *zap.Logger
}

// NewNotificationService creates the service. cache may be nil.
func NewNotificationService(deps Dependencies, cache UnreadCache) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: deps.Store.Notifications,
		staff:         deps.Store.Staff,
		dispatcher:    deps.Dispatcher,
		cache:         cache,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to every engine event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, t := range events.AllEventTypes {
		n.dispatcher.Subscribe(t, n.handleCommitted)
	}
}

func (n *NotificationService) handleCommitted(ctx context.Context, event events.Event) error {
	if len(event.Recipients) == 0 {
		return nil
	}
	if n.cache != nil {
		n.cache.Invalidate(ctx, event.Recipients...)
	}
	n.logger.Debug("notifications delivered",
		zap.String("event_type", string(event.Type)),
		zap.String("record_number", event.RecordNumber),
		zap.Strings("recipients", event.Recipients))
	return nil
}

// List returns the actor's notifications, newest first.
func (n *NotificationService) List(ctx context.Context, actor *domain.UserProfile, limit int) ([]domain.Notification, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	list, err := n.notifications.ListByRecipient(ctx, actor.Username, limit)
	return list, storeError(err)
}

// MarkRead marks one notification read. Only its recipient may do so.
func (n *NotificationService) MarkRead(ctx context.Context, actor *domain.UserProfile, id int64) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	notification, err := n.notifications.GetByID(ctx, id)
	if err != nil {
		return storeError(notFound("notification", id, err))
	}
	if notification.RecipientUsername != actor.Username {
		return errorutil.NewForbidden("access denied")
	}
	if notification.IsRead {
		return nil
	}
	if err := n.notifications.MarkRead(ctx, id); err != nil {
		return storeError(err)
	}
	n.invalidate(ctx, actor.Username)
	return nil
}

// MarkAllRead marks the actor's inbox read and returns how many changed.
func (n *NotificationService) MarkAllRead(ctx context.Context, actor *domain.UserProfile) (int64, error) {
	if err := requireActor(actor); err != nil {
		return 0, err
	}
	changed, err := n.notifications.MarkAllRead(ctx, actor.Username)
	if err != nil {
		return 0, storeError(err)
	}
	n.invalidate(ctx, actor.Username)
	return changed, nil
}

// UnreadCount is shown on every page, so failures degrade to 0.
func (n *NotificationService) UnreadCount(ctx context.Context, username string) int64 {
	if username == "" {
		return 0
	}
	if n.cache != nil {
		if count, ok := n.cache.Get(ctx, username); ok {
			return count
		}
	}
	count, err := n.notifications.CountUnread(ctx, username)
	if err != nil {
		n.logger.Warn("unread count unavailable", zap.String("username", username), zap.Error(err))
		return 0
	}
	if n.cache != nil {
		n.cache.Set(ctx, username, count)
	}
	return count
}

// IsHelpdeskStaff degrades to false when the store is unavailable.
func (n *NotificationService) IsHelpdeskStaff(ctx context.Context, username string) bool {
	if username == "" {
		return false
	}
	member, err := n.staff.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			n.logger.Warn("staff lookup failed", zap.String("username", username), zap.Error(err))
		}
		return false
	}
	return member.IsActive
}

func (n *NotificationService) invalidate(ctx context.Context, username string) {
	if n.cache != nil {
		n.cache.Invalidate(ctx, username)
	}
}
