package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	PenaltyTypeSpeeding         = "speeding"
	PenaltyTypeWrongPark        = "wrong_park"
	PenaltyTypeRedLight         = "red_light"
	PenaltyTypeNoInsurance      = "no_insurance"
	PenaltyTypeDangerousDriving = "dangerous_driving"
	PenaltyTypePaperwork        = "paperwork"
)

const (
	PaymentStatusUnpaid    = "unpaid"
	PaymentStatusPaid      = "paid"
	PaymentStatusOverdue   = "overdue"
	PaymentStatusContested = "contested"
)

const MaxPenaltyPoints = 15

type Penalty struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	// Optional link to a registered car. PlateNumber is kept as typed even
	// when CarID is set so historical rows survive car deletion unlinked.
	CarID       *uint  `json:"car_id"`
	Car         *Car   `gorm:"foreignKey:CarID" json:"car,omitempty"`
	PlateNumber string `json:"plate_number"`

	Type          string     `gorm:"not null" json:"type"`
	Points        int        `gorm:"not null;default:0" json:"points"`
	FineAmount    *float64   `json:"fine_amount"`
	StartDate     time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate       time.Time  `gorm:"not null" json:"end_date"` // always derived: start_date + 6 months
	DueDate       *time.Time `json:"due_date"`
	PaymentStatus string     `gorm:"not null;default:'unpaid'" json:"payment_status"`
	PaymentDate   *time.Time `json:"payment_date"`
	IsActive      bool       `gorm:"not null;default:true;index" json:"is_active"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
}

// BeforeSave enforces the points bound at the store boundary. The request
// structs carry the same bound in binding tags; direct writes must not be
// able to bypass it.
func (p *Penalty) BeforeSave(tx *gorm.DB) error {
	if p.Points < 0 || p.Points > MaxPenaltyPoints {
		return fmt.Errorf("penalty points %d out of range 0-%d", p.Points, MaxPenaltyPoints)
	}
	if p.FineAmount != nil && *p.FineAmount < 0 {
		return fmt.Errorf("fine amount must not be negative")
	}
	return nil
}

const (
	PenaltyActivityCreated = "penalty_created"
	PenaltyActivityPaid    = "penalty_paid"
	PenaltyActivityExpired = "penalty_expired"
	PenaltyActivityEdited  = "penalty_edited"
)

// PenaltyActivity is the audit trail behind the admin console. One row per
// lifecycle event on a penalty.
type PenaltyActivity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	PenaltyID uint      `gorm:"not null;index" json:"penalty_id"`
	Penalty   Penalty   `gorm:"foreignKey:PenaltyID" json:"penalty"`
	Activity  string    `gorm:"not null;type:varchar(50)" json:"activity"`
	Points    int       `gorm:"not null;default:0" json:"points"`
}

func ValidPenaltyType(t string) bool {
	switch t {
	case PenaltyTypeSpeeding, PenaltyTypeWrongPark, PenaltyTypeRedLight,
		PenaltyTypeNoInsurance, PenaltyTypeDangerousDriving, PenaltyTypePaperwork:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusContested:
		return true
	}
	return false
}
