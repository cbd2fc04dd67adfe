package quote

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/domain"
)

type fakeOrderStore struct {
	mu           sync.Mutex
	sequence     int
	failNextN    int
	relinkedFor  map[string]string
	createdOrders []domain.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{relinkedFor: map[string]string{}}
}

func (f *fakeOrderStore) NextOrderReference(ctx context.Context, orgID string, year int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sequence++
	return fmt.Sprintf("ORD-%d-%03d", year, f.sequence), nil
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNextN > 0 {
		f.failNextN--
		return fmt.Errorf("simulated collision")
	}
	f.createdOrders = append(f.createdOrders, order)
	return nil
}

func (f *fakeOrderStore) RelinkMissions(ctx context.Context, quoteID, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relinkedFor[quoteID] = orderID
	return nil
}

func TestTransitionDraftToSent(t *testing.T) {
	store := newFakeOrderStore()
	q := domain.Quote{ID: "q1", Status: domain.QuoteDraft}

	updated, audit, err := Transition(context.Background(), store, q, domain.QuoteSent, nil, nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSent, updated.Status)
	require.NotNil(t, updated.SentAt)
	assert.Equal(t, domain.QuoteDraft, audit.PreviousStatus)
	assert.Equal(t, domain.QuoteSent, audit.NewStatus)
}

func TestTransitionSameStatusFails(t *testing.T) {
	store := newFakeOrderStore()
	q := domain.Quote{ID: "q1", Status: domain.QuoteSent}

	_, _, err := Transition(context.Background(), store, q, domain.QuoteSent, nil, nil, time.Now())

	assert.ErrorIs(t, err, ErrAlreadyInStatus)
}

func TestTransitionFromTerminalStateFails(t *testing.T) {
	store := newFakeOrderStore()
	q := domain.Quote{ID: "q1", Status: domain.QuoteExpired}

	_, _, err := Transition(context.Background(), store, q, domain.QuoteSent, nil, nil, time.Now())

	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestTransitionInvalidNonTerminalFails(t *testing.T) {
	store := newFakeOrderStore()
	q := domain.Quote{ID: "q1", Status: domain.QuoteDraft}

	_, _, err := Transition(context.Background(), store, q, domain.QuoteViewed, nil, nil, time.Now())

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionToAcceptedCreatesOrderAndRelinksMissions(t *testing.T) {
	store := newFakeOrderStore()
	q := domain.Quote{ID: "q1", OrgID: "org1", Status: domain.QuoteSent}

	updated, _, err := Transition(context.Background(), store, q, domain.QuoteAccepted, nil, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.NotNil(t, updated.OrderID)
	assert.Len(t, store.createdOrders, 1)
	assert.Equal(t, "ORD-2026-001", store.createdOrders[0].Reference)
	assert.Equal(t, *updated.OrderID, store.relinkedFor["q1"])
}

func TestTransitionToAcceptedRetriesOnCollision(t *testing.T) {
	store := newFakeOrderStore()
	store.failNextN = 2
	q := domain.Quote{ID: "q1", OrgID: "org1", Status: domain.QuoteSent}

	updated, _, err := Transition(context.Background(), store, q, domain.QuoteAccepted, nil, nil, time.Now())

	require.NoError(t, err)
	require.NotNil(t, updated.OrderID)
}

func TestTransitionToAcceptedExhaustsRetries(t *testing.T) {
	store := newFakeOrderStore()
	store.failNextN = 10
	q := domain.Quote{ID: "q1", OrgID: "org1", Status: domain.QuoteSent}

	_, _, err := Transition(context.Background(), store, q, domain.QuoteAccepted, nil, nil, time.Now())

	assert.Error(t, err)
}

func TestAcceptedToCancelledDoesNotCreateOrderTwice(t *testing.T) {
	store := newFakeOrderStore()
	orderID := "existing-order"
	q := domain.Quote{ID: "q1", OrgID: "org1", Status: domain.QuoteAccepted, OrderID: &orderID}

	updated, _, err := Transition(context.Background(), store, q, domain.QuoteCancelled, nil, nil, time.Now())

	require.NoError(t, err)
	assert.Empty(t, store.createdOrders)
	assert.Equal(t, orderID, *updated.OrderID)
}

func TestShouldAutoExpireOnlyForDraftSentViewedWithPastValidUntil(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	eligible := domain.Quote{Status: domain.QuoteDraft, ValidUntil: &past}
	notYet := domain.Quote{Status: domain.QuoteDraft, ValidUntil: &future}
	noDeadline := domain.Quote{Status: domain.QuoteSent, ValidUntil: nil}
	terminal := domain.Quote{Status: domain.QuoteAccepted, ValidUntil: &past}

	now := time.Now()
	assert.True(t, eligible.ShouldAutoExpire(now))
	assert.False(t, notYet.ShouldAutoExpire(now))
	assert.False(t, noDeadline.ShouldAutoExpire(now))
	assert.False(t, terminal.ShouldAutoExpire(now))
}

func TestBatchExpireSkipsConcurrentlyTransitionedQuotes(t *testing.T) {
	store := newFakeOrderStore()
	past := time.Now().Add(-time.Hour)

	quotes := []domain.Quote{
		{ID: "q1", Status: domain.QuoteDraft, ValidUntil: &past},
		{ID: "q2", Status: domain.QuoteRejected, ValidUntil: &past}, // not eligible (terminal)
	}

	expired, audits, err := BatchExpire(context.Background(), store, quotes, time.Now())

	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "q1", expired[0].ID)
	require.Len(t, audits, 1)
	assert.Equal(t, AutoExpireReason, *audits[0].Reason)
}

func TestEditabilityAndFreezeInvariants(t *testing.T) {
	draft := domain.Quote{Status: domain.QuoteDraft}
	sent := domain.Quote{Status: domain.QuoteSent}
	expired := domain.Quote{Status: domain.QuoteExpired}
	accepted := domain.Quote{Status: domain.QuoteAccepted}

	assert.True(t, draft.IsEditable())
	assert.False(t, sent.IsEditable())
	assert.True(t, sent.IsCommerciallyFrozen())
	assert.False(t, expired.NotesEditable())
	assert.True(t, sent.NotesEditable())
	assert.True(t, accepted.CanConvertToInvoice())
	assert.False(t, sent.CanConvertToInvoice())
}
