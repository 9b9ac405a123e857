package fine

import (
	"library-lending/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy(t *testing.T) {
	t.Run("defaults when empty", func(t *testing.T) {
		p, err := NewPolicy("", "")
		require.NoError(t, err)
		assert.Equal(t, "300.00", p.LostAmount.StringFixed(2))
		assert.Equal(t, "100.00", p.LateAmount.StringFixed(2))
	})

	t.Run("overrides", func(t *testing.T) {
		p, err := NewPolicy("450", "12.345")
		require.NoError(t, err)
		assert.Equal(t, "450.00", p.AmountFor(ReasonLoss).StringFixed(2))
		assert.Equal(t, "12.35", p.AmountFor(ReasonLateReturn).StringFixed(2))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := NewPolicy("three hundred", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects non positive", func(t *testing.T) {
		_, err := NewPolicy("", "0")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestIsLate(t *testing.T) {
	due := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsLate(due, due))
	assert.False(t, IsLate(due, due.Add(23*time.Hour+59*time.Minute)))
	assert.True(t, IsLate(due, due.AddDate(0, 0, 1)))
	assert.False(t, IsLate(due, due.AddDate(0, 0, -1)))

	// 2024-02-29 03:00 UTC
	assert.True(t, IsLate(due, time.Date(2024, 2, 28, 20, 0, 0, 0, time.FixedZone("PDT", -7*60*60))))
	// 2024-02-28 16:00 UTC
	assert.False(t, IsLate(due, time.Date(2024, 2, 29, 1, 0, 0, 0, time.FixedZone("JST", 9*60*60))))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s)

	_, err = ParseStatus("waived")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
