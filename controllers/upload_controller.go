package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/config"
	"github.com/road-mate/api-go/utils"
)

// EvidenceUploader is what the report controller needs from storage: put a
// photo somewhere durable and hand back a public URL. Tests stub it.
type EvidenceUploader interface {
	UploadEvidence(ctx context.Context, reporterID uint, fileName, contentType string, body io.Reader) (string, error)
}

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type AvatarUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// UploadEvidence stores a report photo server-side and returns its public
// URL. Report submission goes through here before persisting the row.
func (uc *UploadController) UploadEvidence(ctx context.Context, reporterID uint, fileName, contentType string, body io.Reader) (string, error) {
	if !isValidPhotoType(contentType) {
		return "", fmt.Errorf("unsupported evidence content type %q", contentType)
	}

	key := uc.generateEvidenceKey(reporterID, fileName)
	_, err := uc.R2Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key), nil
}

// GetAvatarUploadURL hands the client a presigned PUT for its own avatar.
func (uc *UploadController) GetAvatarUploadURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req AvatarUploadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidPhotoType(req.ContentType) || req.FileSize > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid avatar file type or size"})
		return
	}

	key := uc.generateAvatarKey(user.UserID, req.FileName)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 1800,
		},
		Message: "Avatar upload URL generated successfully",
	})
}

// DeleteFile removes an uploaded object the caller owns.
func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)
	// Registered as a catch-all, so the param keeps a leading slash.
	key := strings.TrimPrefix(c.Param("key"), "/")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !uc.verifyFileOwnership(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	_, err := uc.R2Client.DeleteObject(c.Request.Context(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

// Helper functions
func isValidPhotoType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic":
		return true
	}
	return false
}

func (uc *UploadController) generateEvidenceKey(reporterID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("evidence/%d/%d_%s%s", reporterID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) generateAvatarKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("avatars/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = 30 * time.Minute
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) verifyFileOwnership(key string, userID uint) bool {
	// Key format: {prefix}/{userID}/{timestamp}_{uuid}.{ext}
	var prefix string
	var owner uint
	if n, _ := fmt.Sscanf(key, "evidence/%d/", &owner); n == 1 {
		prefix = "evidence"
	} else if n, _ := fmt.Sscanf(key, "avatars/%d/", &owner); n == 1 {
		prefix = "avatars"
	}
	return prefix != "" && owner == userID
}
