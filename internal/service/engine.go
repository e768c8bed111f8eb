package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/notify"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// Dependencies bundles what the lifecycle services share.
type Dependencies struct {
	Store      *repository.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type engine struct {
	store      *repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	clock      func() time.Time
}

func newEngine(deps Dependencies) engine {
	e := engine{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		clock:      deps.Clock,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

func (e *engine) now() time.Time {
	return e.clock().UTC()
}

// run executes mutate in one transaction. The event it returns is fanned out
// into notification rows before commit and published after commit.
func (e *engine) run(ctx context.Context, mutate func(ctx context.Context) (*events.Event, error)) error {
	var committed *events.Event
	err := e.store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := mutate(ctx)
		if err != nil || event == nil {
			return err
		}
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = e.now()
		}
		planned := notify.Plan(*event)
		for i := range planned {
			if err := e.store.Notifications.Create(ctx, &planned[i]); err != nil {
				return fmt.Errorf("insert notification for %s: %w", planned[i].RecipientUsername, err)
			}
		}
		event.Recipients = notify.Recipients(planned)
		committed = event
		return nil
	})
	if err != nil {
		return storeError(err)
	}
	if committed != nil {
		e.publishEvent(ctx, *committed)
	}
	return nil
}

func (e *engine) publishEvent(ctx context.Context, event events.Event) {
	e.logger.Info("record transition",
		zap.String("event_type", string(event.Type)),
		zap.String("record_number", event.RecordNumber),
		zap.String("actor", event.Actor.Username),
		zap.Int("notified", len(event.Recipients)))
	if e.dispatcher == nil {
		return
	}
	_ = e.dispatcher.Publish(ctx, event)
}

// nextNumber allocates a record number inside the current transaction.
func (e *engine) nextNumber(ctx context.Context, prefix domain.RecordPrefix) (string, error) {
	year := e.now().Year()
	seq, err := e.store.Sequences.Next(ctx, prefix, year)
	if err != nil {
		return "", err
	}
	if !domain.ValidSequence(seq) {
		return "", fmt.Errorf("%s sequence for %d exhausted", prefix, year)
	}
	return domain.FormatRecordNumber(prefix, year, seq), nil
}

// storeError converts repository sentinels; domain errors pass through.
func storeError(err error) error {
	var domainErr *errorutil.DomainError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return errorutil.NewNotFound("record", nil)
	case errors.Is(err, repository.ErrDuplicate):
		return errorutil.NewConflict("record already exists", nil)
	default:
		return errorutil.NewInternalError(err)
	}
}

func notFound(resource string, id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errorutil.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}

func requireActor(actor *domain.UserProfile) error {
	if actor == nil || actor.Username == "" {
		return errorutil.NewUnauthorized("login required")
	}
	return nil
}

func requireAdmin(actor *domain.UserProfile) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return errorutil.NewForbidden("admin access required")
	}
	return nil
}

func validationError(field, message string, input any) error {
	details := map[string]any{"field": field}
	if input != nil {
		details["input"] = input
	}
	return errorutil.NewValidationError(message, details)
}
