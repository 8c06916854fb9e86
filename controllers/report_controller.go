package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/logger"
	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/realtime"
	"github.com/road-mate/api-go/settings"
	"github.com/road-mate/api-go/types"
	"github.com/road-mate/api-go/utils"
)

type ReportController struct {
	DB       *gorm.DB
	Hub      *realtime.Hub
	Settings *settings.Service
	Uploader EvidenceUploader
}

func NewReportController(db *gorm.DB, hub *realtime.Hub, settingsService *settings.Service, uploader EvidenceUploader) *ReportController {
	return &ReportController{DB: db, Hub: hub, Settings: settingsService, Uploader: uploader}
}

// ResolvePlate looks a plate fragment up against registered cars. Fragments
// under 3 significant characters are a no-op: the result is cleared without
// touching the database, so typeahead cannot flood it.
func (rc *ReportController) ResolvePlate(c *gin.Context) {
	plate := types.NormalizePlate(c.Query("plate"))

	if len(plate) < types.MinPlateSearchLength {
		c.JSON(http.StatusOK, StandardResponse{
			Success: true,
			Data:    gin.H{"resolved": false, "userId": nil},
		})
		return
	}

	var car models.Car
	pattern := types.EscapeLike(plate) + "%"
	err := rc.DB.Where(`plate_number LIKE ? ESCAPE '\'`, pattern).First(&car).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, StandardResponse{
				Success: true,
				Data:    gin.H{"resolved": false, "userId": nil},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plate lookup failed"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"resolved":    true,
			"userId":      car.OwnerID,
			"plateNumber": car.PlateNumber,
		},
	})
}

// SubmitReport accepts a multipart report: type, target (user id or plate),
// optional comment and photos, optional idempotency key. Photo upload
// failures soft-fail: the report still persists, with a warning.
func (rc *ReportController) SubmitReport(c *gin.Context) {
	user := utils.GetUser(c)

	if rc.Settings != nil && !rc.Settings.GetBool(models.SettingReportsEnabled) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Reporting is currently disabled"})
		return
	}

	var req struct {
		Type           string `form:"type" binding:"required"`
		Plate          string `form:"plate"`
		ReportedUserID *uint  `form:"reportedUserId"`
		Comment        string `form:"comment"`
		IdempotencyKey string `form:"idempotencyKey"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidReportType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report type"})
		return
	}
	if req.ReportedUserID == nil && req.Plate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either a target user or a plate number is required"})
		return
	}

	// A retried submission with the same key returns the original row.
	if req.IdempotencyKey != "" {
		var existing models.Report
		err := rc.DB.Where("reporter_user_id = ? AND idempotency_key = ?", user.UserID, req.IdempotencyKey).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, StandardResponse{Success: true, Data: existing, Message: "Report already submitted"})
			return
		}
	}

	report := models.Report{
		ReporterUserID:      user.UserID,
		ReportedUserID:      req.ReportedUserID,
		ReportedPlateNumber: req.Plate,
		Type:                req.Type,
		Comment:             req.Comment,
		IsResolved:          false,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		report.IdempotencyKey = &key
	}

	if req.ReportedUserID != nil && req.Plate == "" {
		report.ReportedPlateNumber = models.PlateNotApplicable
	}

	// Try to resolve the plate to a registered user when no target is known.
	if req.ReportedUserID == nil {
		normalized := types.NormalizePlate(req.Plate)
		if len(normalized) >= types.MinPlateSearchLength {
			var car models.Car
			if err := rc.DB.Where("plate_number = ?", normalized).First(&car).Error; err == nil {
				report.ReportedUserID = &car.OwnerID
			}
		}
	}

	// Evidence photos: upload first, soft-fail if storage is down.
	var warning string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		var urls pq.StringArray
		for _, fh := range form.File["photos"] {
			file, err := fh.Open()
			if err != nil {
				warning = "Some evidence photos could not be read"
				continue
			}
			url, err := rc.Uploader.UploadEvidence(
				c.Request.Context(), user.UserID, fh.Filename, fh.Header.Get("Content-Type"), file)
			file.Close()
			if err != nil {
				logger.Warn("evidence upload failed", "reporter", user.UserID, "error", err)
				warning = "Report submitted without one or more photos: upload failed"
				continue
			}
			urls = append(urls, url)
		}
		report.PhotoURLs = urls
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		// Two in-flight submissions with the same key: the first one won,
		// hand back its row.
		if errors.Is(err, gorm.ErrDuplicatedKey) && report.IdempotencyKey != nil {
			var existing models.Report
			if rc.DB.Where("reporter_user_id = ? AND idempotency_key = ?", user.UserID, *report.IdempotencyKey).
				First(&existing).Error == nil {
				c.JSON(http.StatusOK, StandardResponse{Success: true, Data: existing, Message: "Report already submitted"})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
		return
	}

	rc.publishReportEvent(c, realtime.EventInsert, &report)

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    report,
		Message: "Report submitted",
		Warning: warning,
	})
}

func (rc *ReportController) ListMyReports(c *gin.Context) {
	user := utils.GetUser(c)

	var reports []models.Report
	if err := rc.DB.Where("reporter_user_id = ?", user.UserID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reports})
}

func (rc *ReportController) ListReportsAgainstMe(c *gin.Context) {
	user := utils.GetUser(c)

	var reports []models.Report
	if err := rc.DB.Where("reported_user_id = ?", user.UserID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reports})
}

type ResolveReportRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ResolveReport lets the reported party close a report exactly once. The
// rating is mandatory; rating and response are fixed at this transition.
func (rc *ReportController) ResolveReport(c *gin.Context) {
	user := utils.GetUser(c)
	reportID := c.Param("id")

	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var report models.Report
	if err := rc.DB.Where("id = ? AND reported_user_id = ?", reportID, user.UserID).
		First(&report).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if report.IsResolved {
		c.JSON(http.StatusConflict, gin.H{"error": "Report is already resolved"})
		return
	}

	now := time.Now()
	report.IsResolved = true
	report.Rating = &req.Rating
	report.ResolverComment = req.Comment
	report.ResolvedAt = &now

	if err := rc.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve report"})
		return
	}

	rc.publishReportEvent(c, realtime.EventUpdate, &report)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: report, Message: "Report resolved"})
}

func (rc *ReportController) publishReportEvent(c *gin.Context, typ realtime.EventType, report *models.Report) {
	if rc.Hub == nil {
		return
	}
	ev := realtime.NewEvent("reports", typ, report.ID, report)
	rc.Hub.Publish(c.Request.Context(), realtime.ReportsChannel(report.ReporterUserID), ev)
	if report.ReportedUserID != nil {
		rc.Hub.Publish(c.Request.Context(), realtime.ReportsChannel(*report.ReportedUserID), ev)
	}
}
