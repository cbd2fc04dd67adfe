package domain

import "time"

// Order is created the first time a Quote transitions to ACCEPTED.
type Order struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Reference string    `json:"reference"` // ORD-YYYY-NNN, unique per (org, year)
	QuoteID   string    `json:"quote_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Mission is a dispatch-level execution unit linked to an order. Missions
// created before their order existed (QuoteID set, OrderID nil) are
// relinked once the order is created, per §4.11 step 2.
type Mission struct {
	ID      string  `json:"id"`
	QuoteID string  `json:"quote_id"`
	OrderID *string `json:"order_id,omitempty"`
}
