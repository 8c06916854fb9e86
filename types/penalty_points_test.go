package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPenaltyEndDate(t *testing.T) {
	start := date(2024, time.January, 10)
	assert.Equal(t, date(2024, time.July, 10), types.PenaltyEndDate(start))
}

func TestAccruedPointsRollingWindow(t *testing.T) {
	penalties := []models.Penalty{
		{Points: 5, StartDate: date(2024, time.January, 10), IsActive: true},
	}

	// Inside the window.
	assert.Equal(t, 5, types.AccruedPoints(date(2024, time.March, 1), penalties))

	// More than six months later: out of the window, even though the
	// expiry sweep may not have flipped is_active yet.
	assert.Equal(t, 0, types.AccruedPoints(date(2024, time.August, 1), penalties))
}

func TestAccruedPointsIgnoresOldAndInactive(t *testing.T) {
	asOf := date(2024, time.June, 15)
	penalties := []models.Penalty{
		{Points: 4, StartDate: date(2024, time.May, 1), IsActive: true},
		{Points: 6, StartDate: date(2024, time.June, 1), IsActive: true},
	}
	assert.Equal(t, 10, types.AccruedPoints(asOf, penalties))

	// A penalty older than the window must not change the result.
	penalties = append(penalties, models.Penalty{
		Points: 9, StartDate: date(2023, time.November, 1), IsActive: true,
	})
	assert.Equal(t, 10, types.AccruedPoints(asOf, penalties))

	// Neither may an inactive one inside the window.
	penalties = append(penalties, models.Penalty{
		Points: 9, StartDate: date(2024, time.June, 1), IsActive: false,
	})
	assert.Equal(t, 10, types.AccruedPoints(asOf, penalties))

	// Future-dated penalties are outside the window too.
	penalties = append(penalties, models.Penalty{
		Points: 9, StartDate: date(2024, time.July, 1), IsActive: true,
	})
	assert.Equal(t, 10, types.AccruedPoints(asOf, penalties))
}

func TestAccruedPointsWindowBoundaryInclusive(t *testing.T) {
	asOf := date(2024, time.July, 10)
	penalties := []models.Penalty{
		// Exactly six months old: still counts.
		{Points: 3, StartDate: date(2024, time.January, 10), IsActive: true},
		// One day older: out.
		{Points: 7, StartDate: date(2024, time.January, 9), IsActive: true},
	}
	assert.Equal(t, 3, types.AccruedPoints(asOf, penalties))
}

func TestAccruedPointsNotClamped(t *testing.T) {
	asOf := date(2024, time.June, 1)
	penalties := []models.Penalty{
		{Points: 12, StartDate: date(2024, time.May, 1), IsActive: true},
		{Points: 8, StartDate: date(2024, time.May, 2), IsActive: true},
	}
	assert.Equal(t, 20, types.AccruedPoints(asOf, penalties))
}

func TestPointsProgress(t *testing.T) {
	ind := types.PointsProgress(0)
	assert.Equal(t, 15, ind.Cells)
	assert.Equal(t, 0, ind.Lit)
	assert.False(t, ind.Warning)

	ind = types.PointsProgress(7)
	assert.Equal(t, 7, ind.Lit)
	assert.False(t, ind.Warning)

	ind = types.PointsProgress(15)
	assert.Equal(t, 15, ind.Lit)
	assert.True(t, ind.Warning)

	// The gauge never grows past 15 cells; the uncapped sum is reported
	// alongside the warning.
	ind = types.PointsProgress(22)
	assert.Equal(t, 15, ind.Cells)
	assert.Equal(t, 15, ind.Lit)
	assert.True(t, ind.Warning)
	assert.Equal(t, 22, ind.Accrued)
}
