package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"airide/internal/logger"
	"airide/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB connects to Postgres using environment variables and migrates the
// backend tables.
func InitDB() error {
	// Load .env (if present)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found – relying on env vars")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "airide")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	db, err := OpenDB(postgres.Open(dsn))
	if err != nil {
		return err
	}

	DB = db
	return nil
}

// OpenDB opens a GORM handle on the given dialector and applies the backend
// migrations. Tests pass a SQLite dialector here.
func OpenDB(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger: gormlogger.New(logger.GormLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.VerificationCode{},
		&models.Driver{},
		&models.LocationPoint{},
		&models.Trip{},
		&models.StatusCheck{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}
	return db, nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle. Handlers read it per request so
// tests can swap DB underneath them.
func GetDB() *gorm.DB {
	return DB
}
