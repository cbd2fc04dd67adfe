package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateReference is surfaced once collision retries are exhausted
// (§5: "beyond that, surface DuplicateReference").
var ErrDuplicateReference = errors.New("repo: duplicate reference")

// ErrNotFound is wrapped by every repository's single-record lookup when
// gorm reports no matching row.
var ErrNotFound = errors.New("repo: not found")

// nextSequence atomically increments the (orgID, year, kind) counter inside
// tx and returns the new value. It reads the counter row with SELECT ...
// FOR UPDATE, so concurrent callers serialize on this row rather than
// racing on the formatted reference string itself.
func nextSequence(tx *gorm.DB, orgID string, year int, kind string) (int, error) {
	var seq ReferenceSequenceModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("org_id = ? AND year = ? AND kind = ?", orgID, year, kind).
		First(&seq).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq = ReferenceSequenceModel{OrgID: orgID, Year: year, Kind: kind, Counter: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("repo: create sequence: %w", err)
		}
		return seq.Counter, nil
	case err != nil:
		return 0, fmt.Errorf("repo: load sequence: %w", err)
	}

	seq.Counter++
	if err := tx.Save(&seq).Error; err != nil {
		return 0, fmt.Errorf("repo: increment sequence: %w", err)
	}
	return seq.Counter, nil
}
