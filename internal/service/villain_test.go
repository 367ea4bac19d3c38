package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/villains-api/internal/errs"
	"github.com/deppfellow/villains-api/internal/model"
	"github.com/deppfellow/villains-api/internal/sqlerr"
	"github.com/deppfellow/villains-api/internal/testing/mocks"
)

var hook = model.Villain{Name: "Captain Hook", Movie: "Peter Pan", Slug: "captain-hook"}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestVillainService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns store rows", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("FindAll", ctx).Return([]model.Villain{hook}, nil).Once()

		got, err := NewVillainService(store, nil).List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Villain{hook}, got)
		store.AssertExpectations(t)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("FindAll", ctx).Return(nil, nil)

		got, err := NewVillainService(store, nil).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("FindAll", ctx).Return(nil, errors.New("connection refused"))

		_, err := NewVillainService(store, nil).List(ctx)
		requireHTTPError(t, err, http.StatusInternalServerError, "GET ALL 500 ERROR")
		assert.NotContains(t, err.Error(), "connection refused")
	})
}

func TestVillainService_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("FindBySlug", ctx, "captain-hook").Return(hook, true, nil).Once()

		got, err := NewVillainService(store, nil).GetBySlug(ctx, "captain-hook")
		require.NoError(t, err)
		assert.Equal(t, hook, *got)
		store.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("FindBySlug", ctx, "gaston").Return(model.Villain{}, false, nil)

		_, err := NewVillainService(store, nil).GetBySlug(ctx, "gaston")
		requireHTTPError(t, err, http.StatusNotFound,
			`You poor, simple fool. Thinking you could request "gaston" from me. Me! The mistress of all evil!`)
	})

	t.Run("slug is not escaped", func(t *testing.T) {
		assert.Equal(t,
			`You poor, simple fool. Thinking you could request "a"b" from me. Me! The mistress of all evil!`,
			NotFoundMessage(`a"b`))
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("FindBySlug", ctx, "scar").Return(model.Villain{}, false, errors.New("timeout"))

		_, err := NewVillainService(store, nil).GetBySlug(ctx, "scar")
		requireHTTPError(t, err, http.StatusInternalServerError, "GET BY SLUG 500 ERROR")
	})
}

func TestVillainService_Create(t *testing.T) {
	ctx := context.Background()
	ursula := model.Villain{Name: "Ursula", Movie: "The Little Mermaid", Slug: "ursula"}

	t.Run("returns record and notifies", func(t *testing.T) {
		record := &model.VillainRecord{Villain: ursula, ID: 3}
		store := &mocks.VillainStore{}
		store.On("Create", ctx, ursula).Return(record, nil).Once()
		notifier := &mocks.VillainCreatedNotifier{}
		notifier.On("EnqueueVillainCreated", mock.Anything, ursula).Return(nil).Once()

		got, err := NewVillainService(store, notifier).Create(ctx, ursula)
		require.NoError(t, err)
		assert.Same(t, record, got)
		store.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("notify failure does not fail the create", func(t *testing.T) {
		record := &model.VillainRecord{Villain: ursula}
		store := &mocks.VillainStore{}
		store.On("Create", ctx, ursula).Return(record, nil)
		notifier := &mocks.VillainCreatedNotifier{}
		notifier.On("EnqueueVillainCreated", mock.Anything, ursula).Return(errors.New("redis down"))

		got, err := NewVillainService(store, notifier).Create(ctx, ursula)
		require.NoError(t, err)
		assert.Same(t, record, got)
	})

	t.Run("slow queue does not hold the response", func(t *testing.T) {
		record := &model.VillainRecord{Villain: ursula}
		store := &mocks.VillainStore{}
		store.On("Create", ctx, ursula).Return(record, nil)

		release := make(chan struct{})
		defer close(release)
		notifier := &mocks.VillainCreatedNotifier{}
		notifier.On("EnqueueVillainCreated", mock.Anything, ursula).
			Run(func(args mock.Arguments) {
				select {
				case <-args.Get(0).(context.Context).Done():
				case <-release:
				}
			}).
			Return(context.DeadlineExceeded)

		svc := NewVillainService(store, notifier)
		svc.notifyTimeout = 20 * time.Millisecond

		start := time.Now()
		got, err := svc.Create(ctx, ursula)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Same(t, record, got)
		assert.Less(t, elapsed, time.Second)
	})

	t.Run("enqueue ignores request cancellation", func(t *testing.T) {
		reqCtx, cancel := context.WithCancel(context.Background())
		cancel()

		record := &model.VillainRecord{Villain: ursula}
		store := &mocks.VillainStore{}
		store.On("Create", reqCtx, ursula).Return(record, nil)
		notifier := &mocks.VillainCreatedNotifier{}
		notifier.On("EnqueueVillainCreated", mock.MatchedBy(func(c context.Context) bool {
			_, hasDeadline := c.Deadline()
			return c.Err() == nil && hasDeadline
		}), ursula).Return(nil).Once()

		_, err := NewVillainService(store, notifier).Create(reqCtx, ursula)
		require.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("duplicate slug is a 400", func(t *testing.T) {
		dup := sqlerr.Convert(&pgconn.PgError{Code: "23505", TableName: "villains", ConstraintName: "villains_slug_key"})
		store := &mocks.VillainStore{}
		store.On("Create", ctx, ursula).Return(nil, dup)
		notifier := &mocks.VillainCreatedNotifier{}

		_, err := NewVillainService(store, notifier).Create(ctx, ursula)
		requireHTTPError(t, err, http.StatusBadRequest, "A Villain with this Slug already exists")
		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "VILLAIN_ALREADY_EXISTS", httpErr.Code)
		notifier.AssertNotCalled(t, "EnqueueVillainCreated", mock.Anything, mock.Anything)
	})

	t.Run("other store failure is a 500", func(t *testing.T) {
		store := &mocks.VillainStore{}
		store.On("Create", ctx, ursula).Return(nil, errors.New("connection reset"))

		_, err := NewVillainService(store, nil).Create(ctx, ursula)
		requireHTTPError(t, err, http.StatusInternalServerError, "CREATE 500 ERROR")
	})
}
