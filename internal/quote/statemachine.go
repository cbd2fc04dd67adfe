// Package quote implements the quote lifecycle state machine of §4.11:
// status transitions, order creation on first ACCEPTED, mission relinking,
// and the append-only audit log.
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// Transition error sentinels, matched by errors.Is against the wrapped
// errorKey so API handlers can map them to HTTP statuses without string
// comparison.
var (
	ErrAlreadyInStatus  = errors.New("quote: alreadyInStatus")
	ErrInvalidTransition = errors.New("quote: invalidTransition")
	ErrTerminalState    = errors.New("quote: terminalState")
	ErrNotFound         = errors.New("quote: notFound")
)

var validTransitions = map[domain.QuoteStatus]map[domain.QuoteStatus]bool{
	domain.QuoteDraft: {
		domain.QuoteSent: true, domain.QuoteAccepted: true, domain.QuoteRejected: true,
		domain.QuoteExpired: true, domain.QuoteCancelled: true,
	},
	domain.QuoteSent: {
		domain.QuoteViewed: true, domain.QuoteAccepted: true, domain.QuoteRejected: true,
		domain.QuoteExpired: true, domain.QuoteCancelled: true,
	},
	domain.QuoteViewed: {
		domain.QuoteAccepted: true, domain.QuoteRejected: true,
		domain.QuoteExpired: true, domain.QuoteCancelled: true,
	},
	domain.QuoteAccepted:  {domain.QuoteCancelled: true},
	domain.QuoteRejected:  {},
	domain.QuoteExpired:   {},
	domain.QuoteCancelled: {},
}

func isTerminal(status domain.QuoteStatus) bool {
	next, ok := validTransitions[status]
	return ok && len(next) == 0
}

// OrderStore is the minimal persistence seam the state machine needs to
// create an Order and relink orphaned missions. A concrete implementation
// lives in internal/repo; tests use an in-memory fake.
type OrderStore interface {
	NextOrderReference(ctx context.Context, orgID string, year int) (string, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	RelinkMissions(ctx context.Context, quoteID, orderID string) error
}

// MaxReferenceCollisionRetries bounds how many times order reference
// generation retries on a unique-index collision before giving up.
const MaxReferenceCollisionRetries = 3

// Transition applies a single status change to quote as one atomic unit:
// timestamp stamping, optional order creation with mission relinking, and
// audit log append. now is injected so callers control time instead of the
// state machine reaching for the wall clock.
func Transition(ctx context.Context, store OrderStore, q domain.Quote, newStatus domain.QuoteStatus, userID, reason *string, now time.Time) (domain.Quote, domain.QuoteStatusAuditLog, error) {
	if q.Status == newStatus {
		return q, domain.QuoteStatusAuditLog{}, ErrAlreadyInStatus
	}

	allowed, known := validTransitions[q.Status]
	if !known {
		return q, domain.QuoteStatusAuditLog{}, ErrInvalidTransition
	}
	if !allowed[newStatus] {
		if isTerminal(q.Status) {
			return q, domain.QuoteStatusAuditLog{}, ErrTerminalState
		}
		return q, domain.QuoteStatusAuditLog{}, ErrInvalidTransition
	}

	previousStatus := q.Status
	updated := q
	updated.Status = newStatus
	stampTimestamp(&updated, newStatus, now)

	if newStatus == domain.QuoteAccepted && updated.OrderID == nil {
		orderID, err := createOrderWithRetry(ctx, store, updated, now)
		if err != nil {
			return q, domain.QuoteStatusAuditLog{}, err
		}
		updated.OrderID = &orderID
		if err := store.RelinkMissions(ctx, updated.ID, orderID); err != nil {
			return q, domain.QuoteStatusAuditLog{}, err
		}
	}

	audit := domain.QuoteStatusAuditLog{
		ID:             uuid.NewString(),
		QuoteID:        updated.ID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		UserID:         userID,
		Reason:         reason,
		Timestamp:      now,
	}

	return updated, audit, nil
}

func stampTimestamp(q *domain.Quote, status domain.QuoteStatus, now time.Time) {
	switch status {
	case domain.QuoteSent:
		q.SentAt = &now
	case domain.QuoteViewed:
		q.ViewedAt = &now
	case domain.QuoteAccepted:
		q.AcceptedAt = &now
	case domain.QuoteRejected:
		q.RejectedAt = &now
	case domain.QuoteExpired:
		q.ExpiredAt = &now
	case domain.QuoteCancelled:
		q.CancelledAt = &now
	}
}

func createOrderWithRetry(ctx context.Context, store OrderStore, q domain.Quote, now time.Time) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxReferenceCollisionRetries; attempt++ {
		reference, err := store.NextOrderReference(ctx, q.OrgID, now.Year())
		if err != nil {
			lastErr = err
			continue
		}
		order := domain.Order{
			ID:        uuid.NewString(),
			OrgID:     q.OrgID,
			Reference: reference,
			QuoteID:   q.ID,
			CreatedAt: now,
		}
		if err := store.CreateOrder(ctx, order); err != nil {
			lastErr = err
			continue
		}
		return order.ID, nil
	}
	return "", fmt.Errorf("quote: order reference generation failed after %d attempts: %w", MaxReferenceCollisionRetries, lastErr)
}

// AutoExpireEligible filters quotes eligible for batch auto-expiry at now.
func AutoExpireEligible(quotes []domain.Quote, now time.Time) []domain.Quote {
	var eligible []domain.Quote
	for _, q := range quotes {
		if q.ShouldAutoExpire(now) {
			eligible = append(eligible, q)
		}
	}
	return eligible
}

// AutoExpireReason is the fixed audit reason for batch auto-expiry
// transitions.
const AutoExpireReason = "Auto-expired"
