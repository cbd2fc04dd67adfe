package subcontract

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurigo/dispatch-core/internal/domain"
)

// AuditEntry records one subcontract hand-off decision.
type AuditEntry struct {
	ID              string
	SubcontractorID string
	UserID          string
	Timestamp       time.Time
	Reason          string
}

// Action is the outcome of executing a subcontract decision against a
// quote/order's trip: the internal vehicle is released and the trip
// analysis no longer carries a VehicleAssignment.
type Action struct {
	SubcontractorID string
	TripAnalysis    domain.TripAnalysis
	Audit           AuditEntry
}

// Apply hands a trip off to subcontractorID: strips the internal
// VehicleAssignment from trip, releasing the internal vehicle/driver for
// reassignment elsewhere, and records an audit entry.
func Apply(trip domain.TripAnalysis, subcontractorID, userID string, now time.Time) Action {
	released := trip
	released.VehicleAssignment = nil

	return Action{
		SubcontractorID: subcontractorID,
		TripAnalysis:    released,
		Audit: AuditEntry{
			ID:              uuid.NewString(),
			SubcontractorID: subcontractorID,
			UserID:          userID,
			Timestamp:       now,
			Reason:          "trip handed off to subcontractor",
		},
	}
}
