package quote

import (
	"context"
	"errors"
	"time"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// BatchExpire transitions every eligible quote to EXPIRED, tolerating
// quotes that a concurrent actor already moved to a terminal state (§5):
// ErrAlreadyInStatus and ErrTerminalState are swallowed and the quote is
// skipped rather than treated as a batch failure.
func BatchExpire(ctx context.Context, store OrderStore, quotes []domain.Quote, now time.Time) ([]domain.Quote, []domain.QuoteStatusAuditLog, error) {
	reason := AutoExpireReason
	var expired []domain.Quote
	var audits []domain.QuoteStatusAuditLog

	for _, q := range AutoExpireEligible(quotes, now) {
		updated, audit, err := Transition(ctx, store, q, domain.QuoteExpired, nil, &reason, now)
		if err != nil {
			if errors.Is(err, ErrAlreadyInStatus) || errors.Is(err, ErrTerminalState) {
				continue
			}
			return expired, audits, err
		}
		expired = append(expired, updated)
		audits = append(audits, audit)
	}

	return expired, audits, nil
}
