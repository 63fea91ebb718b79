package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SequenceRepository hands out the per-day sale numbers. The counter is
// a dedicated row per calendar date bumped with an atomic upsert, not a
// count of existing transactions, so concurrent checkouts can never
// compute the same number.
type SequenceRepository interface {
	NextNumber(tx *gorm.DB, date time.Time) (string, error)
}

type sequenceRepo struct{}

func NewSequenceRepo() SequenceRepository {
	return &sequenceRepo{}
}

// NextNumber returns TRX-YYYYMMDD-NNNN with a 1-based, zero-padded
// sequence for that date. Must run inside the checkout transaction so
// a rolled-back checkout burns the number together with everything else.
func (r *sequenceRepo) NextNumber(tx *gorm.DB, date time.Time) (string, error) {
	dateKey := date.Format("20060102")

	var seq int
	err := tx.Raw(`
		INSERT INTO daily_sequences (date, last_seq) VALUES (?, 1)
		ON CONFLICT (date) DO UPDATE SET last_seq = daily_sequences.last_seq + 1
		RETURNING last_seq
	`, dateKey).Scan(&seq).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("TRX-%s-%04d", dateKey, seq), nil
}
