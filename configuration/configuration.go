package configuration

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"care-connect/models"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port            string
	DatabaseDSN     string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration
	ResetPassLink   string
	SMTPHost        string
	SMTPPort        int
	SMTPEmail       string
	SMTPPassword    string
	RazorpayKeyID   string
	RazorpaySecret  string
}

// LoadConfig reads .env when present and falls back to the process
// environment, so containers can skip the file entirely.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseDSN:     os.Getenv("DB"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("JWT_ACCESS_EXPIRE", 15*time.Minute),
		RefreshTokenTTL: getDuration("JWT_REFRESH_EXPIRE", 24*time.Hour*30),
		ResetTokenTTL:   getDuration("JWT_RESET_TOKEN_EXPIRE", 10*time.Minute),
		ResetPassLink:   getEnv("RESET_PASS_LINK", "http://localhost:3000/reset-password?"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getInt("SMTP_PORT", 587),
		SMTPEmail:       os.Getenv("Email"),
		SMTPPassword:    os.Getenv("Password"),
		RazorpayKeyID:   os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecret:  os.Getenv("RAZORPAY_SECRET"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB connection string is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// ConfigDB opens the postgres connection and migrates the schema. The handle
// is returned to the caller instead of being stored in a package global so
// services can be wired with it explicitly.
func ConfigDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Patient{},
		&models.Doctor{},
		&models.Specialty{},
		&models.Schedule{},
		&models.DoctorSchedule{},
		&models.Appointment{},
		&models.Payment{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// CloseDB releases the underlying sql pool on shutdown.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s value %q, using default", key, v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s value %q, using default", key, v)
		return fallback
	}
	return d
}
