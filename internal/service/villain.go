package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/villains-api/internal/errs"
	"github.com/deppfellow/villains-api/internal/model"
	"github.com/deppfellow/villains-api/internal/sqlerr"
)

const (
	MessageListFailed   = "GET ALL 500 ERROR"
	MessageGetFailed    = "GET BY SLUG 500 ERROR"
	MessageCreateFailed = "CREATE 500 ERROR"

	// DefaultNotifyTimeout caps how long a create waits on the job queue.
	DefaultNotifyTimeout = time.Second

	notFoundFormat = `You poor, simple fool. Thinking you could request "%s" from me. Me! The mistress of all evil!`
)

// VillainStore is the persistence collaborator. A missing slug is reported
// through found=false, never as an error.
type VillainStore interface {
	FindAll(ctx context.Context) ([]model.Villain, error)
	FindBySlug(ctx context.Context, slug string) (model.Villain, bool, error)
	Create(ctx context.Context, v model.Villain) (*model.VillainRecord, error)
}

// VillainCreatedNotifier schedules follow-up work for a new villain.
type VillainCreatedNotifier interface {
	EnqueueVillainCreated(ctx context.Context, v model.Villain) error
}

type VillainService struct {
	store         VillainStore
	notifier      VillainCreatedNotifier
	notifyTimeout time.Duration
}

// NewVillainService wires a store and an optional notifier; a nil
// notifier skips the background task.
func NewVillainService(store VillainStore, notifier VillainCreatedNotifier) *VillainService {
	return &VillainService{
		store:         store,
		notifier:      notifier,
		notifyTimeout: DefaultNotifyTimeout,
	}
}

func (s *VillainService) List(ctx context.Context) ([]model.Villain, error) {
	villains, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(ctx, err, "list", MessageListFailed)
	}
	if villains == nil {
		villains = []model.Villain{}
	}
	return villains, nil
}

func (s *VillainService) GetBySlug(ctx context.Context, slug string) (*model.Villain, error) {
	villain, found, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeFailure(ctx, err, "get_by_slug", MessageGetFailed)
	}
	if !found {
		return nil, errs.NewNotFoundError(NotFoundMessage(slug), true, nil)
	}
	return &villain, nil
}

func (s *VillainService) Create(ctx context.Context, v model.Villain) (*model.VillainRecord, error) {
	record, err := s.store.Create(ctx, v)
	if err != nil {
		switch sqlerr.ErrCode(err) {
		case sqlerr.UniqueViolation, sqlerr.NotNullViolation:
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("slug", v.Slug).
				Msg("villain rejected by store constraint")
			return nil, sqlerr.HandleError(err)
		}
		return nil, storeFailure(ctx, err, "create", MessageCreateFailed)
	}

	if s.notifier != nil {
		s.notifyCreated(ctx, v)
	}

	return record, nil
}

// notifyCreated enqueues the villain-created task and waits at most
// notifyTimeout. Request cancellation does not reach the enqueue. An
// enqueue still running at the timeout is cancelled and not waited for.
func (s *VillainService) notifyCreated(ctx context.Context, v model.Villain) {
	logger := zerolog.Ctx(ctx)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.notifier.EnqueueVillainCreated(ctx, v)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn().
				Err(err).
				Str("slug", v.Slug).
				Msg("failed to enqueue villain created task")
		}
	case <-ctx.Done():
		logger.Warn().
			Dur("timeout", s.notifyTimeout).
			Str("slug", v.Slug).
			Msg("timed out enqueueing villain created task")
	}
}

// NotFoundMessage is the 404 text for slug. The slug is embedded verbatim.
func NotFoundMessage(slug string) string {
	return fmt.Sprintf(notFoundFormat, slug)
}

// storeFailure logs the cause with its SQL category and hides it behind
// the operation's fixed message.
func storeFailure(ctx context.Context, err error, op, message string) error {
	zerolog.Ctx(ctx).Error().
		Err(err).
		Str("operation", op).
		Str("sql_code", string(sqlerr.ErrCode(err))).
		Msg("villain store call failed")

	return errs.NewInternalServerError().WithMessage(message)
}
