package config

import (
	"os"

	"github.com/road-mate/api-go/logger"
	"github.com/road-mate/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

func InitDB(cfg *Config) *gorm.DB {
	// TranslateError so unique violations surface as gorm.ErrDuplicatedKey
	// on every driver; duplicate friend requests depend on it.
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	return db
}

// Migrate runs AutoMigrate for every model. Shared with the test harness so
// sqlite test databases carry the same schema, unique indexes included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.RefreshToken{},
		&models.Car{},
		&models.Penalty{},
		&models.PenaltyActivity{},
		&models.Report{},
		&models.Friendship{},
		&models.ChatMessage{},
		&models.PlatformSetting{},
	)
}
