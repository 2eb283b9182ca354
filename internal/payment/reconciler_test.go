package payment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/database/memory"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

var fastRetry = repository.RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *memory.Store
	farm       farm.Service
	bus        *recordingBus
	reconciler *Reconciler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := farm.LoadCatalog("")
	require.NoError(t, err)

	store := memory.NewStore(catalog.StartingCoins)
	store.SetClock(func() time.Time { return t0 })
	svc := farm.NewService(store, catalog, false, fastRetry)
	bus := &recordingBus{}

	r, err := NewReconciler(store, svc, catalog, bus, Config{Retry: fastRetry})
	require.NoError(t, err)
	return &fixture{store: store, farm: svc, bus: bus, reconciler: r}
}

func (f *fixture) coins(t *testing.T, userID int64) int64 {
	t.Helper()
	u, err := f.store.GetOrCreate(context.Background(), userID, "")
	require.NoError(t, err)
	return u.Coins
}

func TestReconcile_AppliedThenDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase := domain.PurchaseEvent{PaymentID: "p1", UserID: 42, Payload: "add_coins_200", Currency: "XTR", TotalAmount: 20}

	outcome, err := f.reconciler.Reconcile(ctx, purchase)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, int64(300), f.coins(t, 42))

	outcome, err = f.reconciler.Reconcile(ctx, purchase)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Equal(t, int64(300), f.coins(t, 42))

	rec, ok := f.store.Payment("p1")
	require.True(t, ok)
	assert.Equal(t, domain.PaymentApplied, rec.Status)
	assert.Equal(t, "coins:200", rec.Detail)
	assert.Equal(t, []event.Type{event.PaymentApplied}, f.bus.Types())
}

func TestReconcile_DuplicateDetectedByStoreWithoutCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase := domain.PurchaseEvent{PaymentID: "p1", UserID: 42, Payload: "add_coins_200"}

	_, err := f.reconciler.Reconcile(ctx, purchase)
	require.NoError(t, err)

	catalog, err := farm.LoadCatalog("")
	require.NoError(t, err)
	restarted, err := NewReconciler(f.store, f.farm, catalog, f.bus, Config{Retry: fastRetry})
	require.NoError(t, err)

	outcome, err := restarted.Reconcile(ctx, purchase)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Equal(t, int64(300), f.coins(t, 42))
}

func TestReconcile_InvalidPayloadIsStillRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase := domain.PurchaseEvent{PaymentID: "p2", UserID: 42, Payload: "bogus"}

	outcome, err := f.reconciler.Reconcile(ctx, purchase)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Equal(t, OutcomeInvalidPayload, outcome)

	rec, ok := f.store.Payment("p2")
	require.True(t, ok, "sentinel must exist")
	assert.Equal(t, domain.PaymentInvalid, rec.Status)
	assert.Contains(t, rec.Detail, domain.ErrMsgInvalidPayload)

	outcome, err = f.reconciler.Reconcile(ctx, purchase)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome)
	assert.Equal(t, []event.Type{event.PaymentRejected}, f.bus.Types())
}

func TestReconcile_AnimalPayload(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.reconciler.Reconcile(context.Background(), domain.PurchaseEvent{PaymentID: "p3", UserID: 7, Payload: "add_animal_cow"})

	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome)
	u, err := f.store.GetOrCreate(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.Count(domain.AnimalCow))
	assert.Equal(t, int64(100), u.Coins)
}

func TestReconcile_ConcurrentDeliveriesCreditOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	purchase := domain.PurchaseEvent{PaymentID: "p-burst", UserID: 42, Payload: "add_coins_200"}

	const deliveries = 100
	outcomes := make(chan Outcome, deliveries)
	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := f.reconciler.Reconcile(ctx, purchase)
			assert.NoError(t, err)
			outcomes <- o
		}()
	}
	wg.Wait()
	close(outcomes)

	counts := map[Outcome]int{}
	for o := range outcomes {
		counts[o]++
	}
	assert.Equal(t, 1, counts[OutcomeApplied])
	assert.Equal(t, deliveries-1, counts[OutcomeDuplicate])
	assert.Equal(t, int64(300), f.coins(t, 42))
}

func TestReconcile_DistinctPaymentsAllApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		outcome, err := f.reconciler.Reconcile(ctx, domain.PurchaseEvent{PaymentID: fmt.Sprintf("p%d", i), UserID: 42, Payload: "add_coins_10"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeApplied, outcome)
	}
	assert.Equal(t, int64(200), f.coins(t, 42))
}

func TestReconcile_RejectsEventsWithoutIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.reconciler.Reconcile(context.Background(), domain.PurchaseEvent{UserID: 42, Payload: "add_coins_1"})
	assert.ErrorIs(t, err, ErrNotRecorded)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.reconciler.Reconcile(context.Background(), domain.PurchaseEvent{PaymentID: "p", Payload: "add_coins_1"})
	assert.ErrorIs(t, err, ErrNotRecorded)
}

type mockCrediter struct {
	mock.Mock
}

func (m *mockCrediter) Credit(ctx context.Context, userID int64, displayName string, effect domain.Effect) (domain.User, error) {
	args := m.Called(ctx, userID, displayName, effect)
	return args.Get(0).(domain.User), args.Error(1)
}

func TestReconcile_CreditFailureLeavesPaymentRecorded(t *testing.T) {
	catalog, err := farm.LoadCatalog("")
	require.NoError(t, err)
	store := memory.NewStore(100)
	store.SetClock(func() time.Time { return t0 })
	crediter := &mockCrediter{}
	crediter.On("Credit", mock.Anything, int64(42), "", domain.Effect{Kind: domain.EffectCoinGrant, Coins: 200}).
		Return(domain.User{}, domain.ErrConflictRetryable).Once()
	bus := &recordingBus{}

	r, err := NewReconciler(store, crediter, catalog, bus, Config{Retry: fastRetry, UnsettledGrace: time.Minute})
	require.NoError(t, err)

	outcome, err := r.Reconcile(context.Background(), domain.PurchaseEvent{PaymentID: "p9", UserID: 42, Payload: "add_coins_200"})
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
	assert.NotErrorIs(t, err, ErrNotRecorded, "the sentinel was written")
	assert.Zero(t, outcome)

	rec, ok := store.Payment("p9")
	require.True(t, ok)
	assert.Equal(t, domain.PaymentRecorded, rec.Status)

	outcome, err = r.Reconcile(context.Background(), domain.PurchaseEvent{PaymentID: "p9", UserID: 42, Payload: "add_coins_200"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, outcome, "never retried automatically")
	crediter.AssertExpectations(t)

	r.now = func() time.Time { return t0.Add(30 * time.Second) }
	n, err := r.FlagUnsettled(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "still inside the grace period")

	r.now = func() time.Time { return t0.Add(2 * time.Minute) }
	n, err = r.FlagUnsettled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []event.Type{event.PaymentUnsettled}, bus.Types())

	listed, err := r.ListUnsettled(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "p9", listed[0].PaymentID)
}

func TestValidateCheckout(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		userID   int64
		payload  string
		currency string
		amount   int64
		wantErr  error
	}{
		{"valid coins", 42, "add_coins_100", "XTR", 10, nil},
		{"valid cow", 42, "add_animal_cow", "XTR", 25, nil},
		{"unparsable", 42, "bogus", "XTR", 10, domain.ErrInvalidPayload},
		{"parses but not sold", 42, "add_coins_7", "XTR", 1, domain.ErrUnknownProduct},
		{"wrong currency", 42, "add_coins_100", "USD", 10, domain.ErrPaymentMismatch},
		{"wrong amount", 42, "add_coins_100", "XTR", 9, domain.ErrPaymentMismatch},
		{"no user", 0, "add_coins_100", "XTR", 10, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.reconciler.ValidateCheckout(tt.userID, tt.payload, tt.currency, tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewReconciler_RejectsBadCatalogPayload(t *testing.T) {
	catalog, err := farm.LoadCatalog("")
	require.NoError(t, err)
	catalog.Products = append(catalog.Products, farm.Product{ID: "broken", Payload: "add_gems_5", PriceStars: 1})

	_, err = NewReconciler(memory.NewStore(100), nil, catalog, nil, Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCatalogPayload)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", OutcomeApplied.String())
	assert.Equal(t, "duplicate", OutcomeDuplicate.String())
	assert.Equal(t, "invalid_payload", OutcomeInvalidPayload.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}
