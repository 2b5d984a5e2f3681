package config

import (
	"log"
	"os"
	"strconv"

	"pharmacy-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Config holds everything read from the environment at startup. The JWT
// secret is handed to the Authenticator at construction rather than read
// through a package global.
type Config struct {
	SecretKey string
	Debug     bool
	DBPath    string
	UploadDir string
	Port      string
}

func Load() Config {
	debug, _ := strconv.ParseBool(getEnv("DEBUG", "true"))
	return Config{
		SecretKey: getEnv("SECRET_KEY", "pharmacy_super_secret_2024"),
		Debug:     debug,
		DBPath:    getEnv("DB_PATH", "pharmacy.db"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		Port:      getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := MigrateModels(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}

// MigrateModels auto-migrates every table. Exported so tests can run it
// against an in-memory database.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Pharmacy{},
		&models.Drug{},
		&models.Review{},
		&models.OpeningHours{},
		&models.Cart{},
		&models.CartItem{},
	)
}
