package domain_test

import (
	"testing"
	"time"

	"hmc-messhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebateDays_Inclusive(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1, domain.RebateDays(day(5), day(5)))
	assert.Equal(t, 2, domain.RebateDays(day(5), day(6)))
	assert.Equal(t, 7, domain.RebateDays(day(1), day(7)))
	assert.Equal(t, 31, domain.RebateDays(day(1), day(31)))
}

func TestRebateDays_AcrossMonthBoundary(t *testing.T) {
	from := time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, domain.RebateDays(from, to))
}

func TestRebateDays_AcrossDSTSwitch(t *testing.T) {
	// Dates parsed in a DST zone arrive as local midnights; the
	// spring-forward 23-hour day must not shrink the count.
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	from := time.Date(2026, time.March, 28, 0, 0, 0, 0, berlin)
	to := time.Date(2026, time.March, 30, 0, 0, 0, 0, berlin)
	assert.Equal(t, 3, domain.RebateDays(from, to))

	// Fall-back 25-hour day must not grow it either
	from = time.Date(2026, time.October, 24, 0, 0, 0, 0, berlin)
	to = time.Date(2026, time.October, 26, 0, 0, 0, 0, berlin)
	assert.Equal(t, 3, domain.RebateDays(from, to))
}
