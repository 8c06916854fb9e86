package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ReportTypeWrongPark  = "wrong_park"
	ReportTypeBlocking   = "blocking"
	ReportTypeLightsOn   = "lights_on"
	ReportTypeWindowOpen = "window_open"
	ReportTypeAlarm      = "alarm"
	ReportTypeDamage     = "damage"
)

// PlateNotApplicable is stored in place of a plate when the report targets a
// known user and no plate was typed. The sentinel string is persisted, not
// null; consumers must treat it as "no plate on record".
const PlateNotApplicable = "N/A"

type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ReporterUserID uint  `gorm:"not null;index;uniqueIndex:ux_reports_reporter_idem,priority:1" json:"reporter_user_id"`
	ReporterUser   User  `gorm:"foreignKey:ReporterUserID" json:"reporter_user"`
	ReportedUserID *uint `gorm:"index" json:"reported_user_id"`
	ReportedUser   *User `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`

	// Plate as the reporter typed it. Not a foreign key: the car may never
	// have been registered, or may be deleted later.
	ReportedPlateNumber string `json:"reported_plate_number"`

	Type      string         `gorm:"not null" json:"type"`
	Comment   string         `json:"comment"`
	PhotoURLs pq.StringArray `json:"photo_urls" gorm:"type:text[]"`

	IsResolved      bool       `gorm:"not null;default:false;index" json:"is_resolved"`
	Rating          *int       `json:"rating"` // 1-5, set once at resolution
	ResolverComment string     `json:"resolver_comment"`
	ResolvedAt      *time.Time `json:"resolved_at"`

	// Optional client token making retried submissions safe. Unique per
	// reporter; a retry with the same key returns the original row.
	IdempotencyKey *string `gorm:"uniqueIndex:ux_reports_reporter_idem,priority:2" json:"idempotency_key,omitempty"`
}

func ValidReportType(t string) bool {
	switch t {
	case ReportTypeWrongPark, ReportTypeBlocking, ReportTypeLightsOn,
		ReportTypeWindowOpen, ReportTypeAlarm, ReportTypeDamage:
		return true
	}
	return false
}
