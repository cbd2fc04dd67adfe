package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurigo/dispatch-core/internal/domain"
	"github.com/aurigo/dispatch-core/internal/quote"
)

type fakeQuoteStore struct {
	quotes     map[string]domain.Quote
	applyCalls int
	applyErr   error
}

func (f *fakeQuoteStore) Get(ctx context.Context, orgID, id string) (domain.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return domain.Quote{}, quote.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuoteStore) ApplyTransition(ctx context.Context, orgID string, q domain.Quote, audit domain.QuoteStatusAuditLog, now time.Time) error {
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}
	f.quotes[q.ID] = q
	return nil
}

type fakeOrderStore struct{}

func (f *fakeOrderStore) NextOrderReference(ctx context.Context, orgID string, year int) (string, error) {
	return "ORD-2026-001", nil
}
func (f *fakeOrderStore) CreateOrder(ctx context.Context, order domain.Order) error { return nil }
func (f *fakeOrderStore) RelinkMissions(ctx context.Context, quoteID, orderID string) error {
	return nil
}

func newQuoteTestRouter(store *fakeQuoteStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewQuoteHandler(store, &fakeOrderStore{}, nil, nil)
	r := gin.New()
	r.POST("/quotes/:id/transitions", handler.Transition)
	return r
}

func TestQuoteTransitionRequiresOrgHeader(t *testing.T) {
	store := &fakeQuoteStore{quotes: map[string]domain.Quote{}}
	r := newQuoteTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/quotes/q1/transitions", strings.NewReader(`{"new_status":"SENT"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteTransitionNotFound(t *testing.T) {
	store := &fakeQuoteStore{quotes: map[string]domain.Quote{}}
	r := newQuoteTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/quotes/missing/transitions", strings.NewReader(`{"new_status":"SENT"}`))
	req.Header.Set("X-Org-ID", "org1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body TransitionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "notFound", body.ErrorKey)
}

func TestQuoteTransitionSuccessPersistsAndReturnsUpdatedQuote(t *testing.T) {
	store := &fakeQuoteStore{quotes: map[string]domain.Quote{
		"q1": {ID: "q1", OrgID: "org1", Status: domain.QuoteDraft},
	}}
	r := newQuoteTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/quotes/q1/transitions", strings.NewReader(`{"new_status":"SENT"}`))
	req.Header.Set("X-Org-ID", "org1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body TransitionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Quote)
	assert.Equal(t, domain.QuoteSent, body.Quote.Status)
	assert.Equal(t, 1, store.applyCalls)
}

func TestQuoteTransitionInvalidTransitionMapsToUnprocessableEntity(t *testing.T) {
	store := &fakeQuoteStore{quotes: map[string]domain.Quote{
		"q1": {ID: "q1", OrgID: "org1", Status: domain.QuoteDraft},
	}}
	r := newQuoteTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/quotes/q1/transitions", strings.NewReader(`{"new_status":"VIEWED"}`))
	req.Header.Set("X-Org-ID", "org1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body TransitionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalidTransition", body.ErrorKey)
	assert.Equal(t, 0, store.applyCalls)
}
