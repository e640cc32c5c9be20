package services

import (
	"os"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.User{}, &models.TokenEntry{}, &models.WebhookEvent{})
	db.AutoMigrate(&models.User{}, &models.TokenEntry{}, &models.WebhookEvent{})

	database.DB = db
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func setupTestConfig() {
	os.Setenv("JWT_SECRET", "test_secret")
	os.Setenv("STRIPE_SECRET_KEY", "sk_test_secret")
	os.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")
}
