package settings_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/config"
	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/realtime"
	"github.com/road-mate/api-go/settings"
)

var dbSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:settings_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func TestLoadFillsDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := settings.NewService(db, nil)
	require.NoError(t, svc.Load(context.Background()))

	assert.True(t, svc.GetBool(models.SettingReportsEnabled))
	assert.True(t, svc.GetBool(models.SettingChatEnabled))
	assert.True(t, svc.GetBool(models.SettingRegistrationEnabled))
	assert.NotEmpty(t, svc.Get(models.SettingEmergencyNumbers))
}

func TestLoadPrefersStoredRows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.PlatformSetting{
		Key: models.SettingChatEnabled, Value: "false",
	}).Error)

	svc := settings.NewService(db, nil)
	require.NoError(t, svc.Load(context.Background()))

	assert.False(t, svc.GetBool(models.SettingChatEnabled))
	// Keys without rows still come from defaults.
	assert.True(t, svc.GetBool(models.SettingReportsEnabled))
}

func TestSetUpsertsAndCaches(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := settings.NewService(db, nil)
	require.NoError(t, svc.Load(ctx))

	require.NoError(t, svc.Set(ctx, models.SettingReportsEnabled, "false"))
	assert.False(t, svc.GetBool(models.SettingReportsEnabled))

	var count int64
	db.Model(&models.PlatformSetting{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// A second Set updates the row in place.
	require.NoError(t, svc.Set(ctx, models.SettingReportsEnabled, "true"))
	db.Model(&models.PlatformSetting{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.True(t, svc.GetBool(models.SettingReportsEnabled))
}

func TestGetBoolParsing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := settings.NewService(db, nil)
	require.NoError(t, svc.Load(ctx))

	for _, v := range []string{"1", "true", "TRUE", " yes ", "on"} {
		require.NoError(t, svc.Set(ctx, "flag", v))
		assert.True(t, svc.GetBool("flag"), "value %q", v)
	}
	for _, v := range []string{"", "0", "false", "off", "banana"} {
		require.NoError(t, svc.Set(ctx, "flag", v))
		assert.False(t, svc.GetBool("flag"), "value %q", v)
	}
}

func TestWatchRefreshesAcrossServices(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	hub := realtime.NewHub(client)

	// Two services over the same database, as two processes would be.
	writer := settings.NewService(db, hub)
	reader := settings.NewService(db, hub)
	require.NoError(t, writer.Load(ctx))
	require.NoError(t, reader.Load(ctx))

	reader.Watch(ctx)
	defer reader.Close()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, writer.Set(ctx, models.SettingChatEnabled, "false"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !reader.GetBool(models.SettingChatEnabled) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("reader cache did not refresh after settings event")
}
