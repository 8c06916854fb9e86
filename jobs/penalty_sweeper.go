package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/road-mate/api-go/logger"
	"github.com/road-mate/api-go/models"
)

// PenaltySweeper periodically deactivates penalties whose window has
// passed. Readers never trust is_active alone (the accrual computation
// re-derives the window), so a lagging sweep only leaves stale flags,
// never wrong point totals.
type PenaltySweeper struct {
	DB       *gorm.DB
	Interval time.Duration
}

func NewPenaltySweeper(db *gorm.DB, interval time.Duration) *PenaltySweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PenaltySweeper{DB: db, Interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once immediately and then on
// every tick. Meant to be started as a goroutine from main.
func (s *PenaltySweeper) Run(ctx context.Context) {
	if err := s.SweepOnce(ctx, time.Now()); err != nil {
		logger.Warn("penalty sweep failed", "error", err)
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx, time.Now()); err != nil {
				logger.Warn("penalty sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce flips is_active on every penalty whose end date has passed and
// writes one audit row per expired penalty.
func (s *PenaltySweeper) SweepOnce(ctx context.Context, now time.Time) error {
	var expired []models.Penalty
	err := s.DB.WithContext(ctx).
		Where("is_active = ? AND end_date < ?", true, now).
		Find(&expired).Error
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range expired {
			if err := tx.Model(&models.Penalty{}).
				Where("id = ?", p.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}

			activity := models.PenaltyActivity{
				UserID:    p.UserID,
				PenaltyID: p.ID,
				Activity:  models.PenaltyActivityExpired,
				Points:    p.Points,
			}
			if err := tx.Create(&activity).Error; err != nil {
				return err
			}
		}
		logger.Info("penalty sweep deactivated penalties", "count", len(expired))
		return nil
	})
}
