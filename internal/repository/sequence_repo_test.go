package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNextNumberFormatAndIncrement(t *testing.T) {
	db := openTestDB(t)
	repo := NewSequenceRepo()
	date := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	first, err := repo.NextNumber(db, date)
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260301-0001", first)

	second, err := repo.NextNumber(db, date)
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260301-0002", second)
}

func TestNextNumberIndependentPerDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewSequenceRepo()

	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	n, err := repo.NextNumber(db, monday)
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260302-0001", n)
	n, err = repo.NextNumber(db, monday)
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260302-0002", n)

	// A new date starts back at 0001
	n, err = repo.NextNumber(db, tuesday)
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260303-0001", n)
}

func TestNextNumberRollsBackWithTransaction(t *testing.T) {
	db := openTestDB(t)
	repo := NewSequenceRepo()
	date := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

	abort := errors.New("abort")
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := repo.NextNumber(tx, date)
		require.NoError(t, err)
		assert.Equal(t, "TRX-20260304-0001", n)
		return abort
	})
	require.ErrorIs(t, err, abort)

	// The rolled-back draw never happened; the number is reissued
	n, err := repo.NextNumber(db, date)
	require.NoError(t, err)
	assert.Equal(t, "TRX-20260304-0001", n)
}

func TestNextNumberPadsToFourDigits(t *testing.T) {
	db := openTestDB(t)
	repo := NewSequenceRepo()
	date := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	var last string
	for i := 0; i < 12; i++ {
		n, err := repo.NextNumber(db, date)
		require.NoError(t, err)
		last = n
	}
	assert.Equal(t, "TRX-20260305-0012", last)
}
