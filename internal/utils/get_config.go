package utils

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	AppTimezone string `yaml:"APP_TIMEZONE"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`
	RateLimit   string `yaml:"RATE_LIMIT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBLogLevel string `yaml:"DB_LOG_LEVEL"`
	DBMaxConns string `yaml:"DB_MAX_OPEN_CONNS"`

	// Tokens issued by the identity provider
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	KitchenEmail     string `yaml:"KITCHEN_EMAIL"`

	// Midtrans configuration
	ClientKey string `yaml:"CLIENT_KEY"`
	ServerKey string `yaml:"SERVER_KEY"`
	IsProd    string `yaml:"IsProd"`
	MealPrice string `yaml:"MEAL_PRICE"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis plan cache, empty URL disables it
	RedisURL     string `yaml:"REDIS_URL"`
	PlanCacheTTL string `yaml:"PLAN_CACHE_TTL"`
}

var (
	config   Config
	configMu sync.RWMutex
)

// LoadConfig reads .env and config.yaml from the working directory.
func LoadConfig() {
	if err := LoadConfigFrom("config.yaml"); err != nil {
		log.Warnf("config: %v", err)
	}
}

// LoadConfigFrom reads the YAML file at path. Environment variables (after .env
// is loaded) override the file; a missing file leaves only the environment.
func LoadConfigFrom(path string) error {
	_ = godotenv.Load()

	var loaded Config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, &loaded); err != nil {
			return err
		}
	}

	for key, field := range loaded.fields() {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}

	configMu.Lock()
	config = loaded
	configMu.Unlock()

	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_URL":            &c.AppURL,
		"APP_TIMEZONE":       &c.AppTimezone,
		"CORS_ORIGINS":       &c.CORSOrigins,
		"RATE_LIMIT":         &c.RateLimit,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"DB_LOG_LEVEL":       &c.DBLogLevel,
		"DB_MAX_OPEN_CONNS":  &c.DBMaxConns,
		"JWT_SECRET":         &c.JWTSecret,
		"JWT_ISSUER":         &c.JWTIssuer,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"KITCHEN_EMAIL":      &c.KitchenEmail,
		"CLIENT_KEY":         &c.ClientKey,
		"SERVER_KEY":         &c.ServerKey,
		"IsProd":             &c.IsProd,
		"MEAL_PRICE":         &c.MealPrice,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"REDIS_URL":          &c.RedisURL,
		"PLAN_CACHE_TTL":     &c.PlanCacheTTL,
	}
}

// AppConfig returns a snapshot of the loaded configuration.
func AppConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

func GetConfig(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()
	if key == "IS_PROD" {
		key = "IsProd"
	}
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

func GetConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		return fallback
	}
	return value
}

func GetConfigBool(key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(GetConfig(key)))
	return err == nil && value
}

func GetConfigDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(GetConfig(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// Location is the kitchen's time zone; calendar days are cut in it.
func Location() *time.Location {
	name := GetConfig("APP_TIMEZONE")
	if name == "" {
		name = "Asia/Jakarta"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("config: unknown APP_TIMEZONE %q, using UTC", name)
		return time.UTC
	}
	return loc
}
