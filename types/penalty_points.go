package types

import (
	"time"

	"github.com/road-mate/api-go/models"
)

// AccrualWindowMonths is the rolling window over which penalty points count
// toward a driver's standing.
const AccrualWindowMonths = 6

// PenaltyEndDate derives the end of a penalty's accrual window from its
// start date. Every write path that touches start_date goes through this;
// end_date is never user-supplied.
func PenaltyEndDate(startDate time.Time) time.Time {
	return startDate.AddDate(0, AccrualWindowMonths, 0)
}

// AccruedPoints sums the points of penalties whose start date falls inside
// the rolling window ending at asOf and which are still flagged active.
//
// The window filter is applied on top of is_active on purpose: the expiry
// sweep that clears the flag runs out of band and may lag, so the flag alone
// can over-count but the window re-derivation cannot. The sum is not
// clamped; callers exceeding MaxPenaltyPoints get the real total and decide
// how to flag it.
func AccruedPoints(asOf time.Time, penalties []models.Penalty) int {
	windowStart := asOf.AddDate(0, -AccrualWindowMonths, 0)
	total := 0
	for _, p := range penalties {
		if !p.IsActive {
			continue
		}
		if p.StartDate.Before(windowStart) || p.StartDate.After(asOf) {
			continue
		}
		total += p.Points
	}
	return total
}

// ProgressIndicator describes the fixed 15-cell points gauge.
type ProgressIndicator struct {
	Cells   int  `json:"cells"`     // always models.MaxPenaltyPoints
	Lit     int  `json:"lit"`       // cells lit, capped at Cells
	Warning bool `json:"warning"`   // accrued reached or passed the threshold
	Accrued int  `json:"accrued"`   // the uncapped sum
}

// PointsProgress maps an accrued total onto the gauge. The indicator never
// grows past 15 cells; totals beyond it light everything and raise the
// warning instead.
func PointsProgress(accrued int) ProgressIndicator {
	lit := accrued
	if lit < 0 {
		lit = 0
	}
	if lit > models.MaxPenaltyPoints {
		lit = models.MaxPenaltyPoints
	}
	return ProgressIndicator{
		Cells:   models.MaxPenaltyPoints,
		Lit:     lit,
		Warning: accrued >= models.MaxPenaltyPoints,
		Accrued: accrued,
	}
}
