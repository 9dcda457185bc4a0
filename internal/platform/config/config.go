package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration. Every field the reporting core
// reads has an explicit default; there is no dynamic settings lookup at
// runtime.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Auth
	JWTSecret         string
	ServiceAPIKeyHash string // bcrypt hash of the service-to-service API key

	// Rate limiting, e.g. "100-M" (100 requests per minute per IP)
	RateLimit string

	// Reporting core
	ReportingEnabled          bool
	RegulatorAPIURL           string
	RegulatorAPIKey           string
	ReportingThreshold        decimal.Decimal
	BaseCurrencyCode          string
	BaseCurrencyPrecision     int
	ExemptionAutoApproveLimit decimal.Decimal
	ReportTimeout             time.Duration
	BatchReportTimeout        time.Duration
	ReconciliationWindow      time.Duration
	ReconciliationInterval    time.Duration
	ExemptionReviewInterval   time.Duration

	// Fee & conversion engine
	BaseFee       decimal.Decimal
	FeePercentage decimal.Decimal

	// Reporting entity identity (goes into every regulator payload)
	ReportingEntityName    string
	ReportingEntityLicense string
	ReportingEntityCountry string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SERVICE_API_KEY_HASH", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.SetDefault("REPORTING_ENABLED", true)
	viper.SetDefault("REGULATOR_API_URL", "")
	viper.SetDefault("REGULATOR_API_KEY", "")
	viper.SetDefault("REPORTING_THRESHOLD", "1000.00")
	viper.SetDefault("BASE_CURRENCY_CODE", "USD")
	viper.SetDefault("BASE_CURRENCY_PRECISION", 2)
	viper.SetDefault("EXEMPTION_AUTO_APPROVE_LIMIT", "500.00")
	viper.SetDefault("REPORT_TIMEOUT", "30s")
	viper.SetDefault("BATCH_REPORT_TIMEOUT", "60s")
	viper.SetDefault("RECONCILIATION_WINDOW", "24h")
	viper.SetDefault("RECONCILIATION_INTERVAL", "15m")
	viper.SetDefault("EXEMPTION_REVIEW_INTERVAL", "10m")

	viper.SetDefault("REMITTANCE_BASE_FEE", "2.50")
	viper.SetDefault("REMITTANCE_FEE_PERCENT", "0.015")

	viper.SetDefault("REPORTING_ENTITY_NAME", "RemitFlow Ltd")
	viper.SetDefault("REPORTING_ENTITY_LICENSE", "")
	viper.SetDefault("REPORTING_ENTITY_COUNTRY", "US")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key. THIS IS NOT FOR PRODUCTION.")
	}
	cfg.ServiceAPIKeyHash = viper.GetString("SERVICE_API_KEY_HASH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.ReportingEnabled = viper.GetBool("REPORTING_ENABLED")
	cfg.RegulatorAPIURL = viper.GetString("REGULATOR_API_URL")
	cfg.RegulatorAPIKey = viper.GetString("REGULATOR_API_KEY")
	if cfg.ReportingEnabled && cfg.RegulatorAPIURL == "" {
		log.Println("Warning: REPORTING_ENABLED is true but REGULATOR_API_URL is not set. Report submissions will fail.")
	}

	cfg.ReportingThreshold = mustDecimal("REPORTING_THRESHOLD", "1000.00")
	cfg.BaseCurrencyCode = viper.GetString("BASE_CURRENCY_CODE")
	cfg.BaseCurrencyPrecision = viper.GetInt("BASE_CURRENCY_PRECISION")
	cfg.ExemptionAutoApproveLimit = mustDecimal("EXEMPTION_AUTO_APPROVE_LIMIT", "500.00")

	cfg.ReportTimeout = mustDuration("REPORT_TIMEOUT", 30*time.Second)
	cfg.BatchReportTimeout = mustDuration("BATCH_REPORT_TIMEOUT", 60*time.Second)
	cfg.ReconciliationWindow = mustDuration("RECONCILIATION_WINDOW", 24*time.Hour)
	cfg.ReconciliationInterval = mustDuration("RECONCILIATION_INTERVAL", 15*time.Minute)
	cfg.ExemptionReviewInterval = mustDuration("EXEMPTION_REVIEW_INTERVAL", 10*time.Minute)

	cfg.BaseFee = mustDecimal("REMITTANCE_BASE_FEE", "2.50")
	cfg.FeePercentage = mustDecimal("REMITTANCE_FEE_PERCENT", "0.015")

	cfg.ReportingEntityName = viper.GetString("REPORTING_ENTITY_NAME")
	cfg.ReportingEntityLicense = viper.GetString("REPORTING_ENTITY_LICENSE")
	cfg.ReportingEntityCountry = viper.GetString("REPORTING_ENTITY_COUNTRY")
	if cfg.ReportingEnabled && cfg.ReportingEntityLicense == "" {
		log.Println("Warning: REPORTING_ENTITY_LICENSE not set. Regulator payloads will carry an empty license number.")
	}

	return cfg, nil
}

// mustDecimal reads a decimal-valued setting, falling back to the default on
// parse failure so a typo never silently becomes zero.
func mustDecimal(key, fallback string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

// mustDuration reads a duration-valued setting with a fallback default.
func mustDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		return fallback
	}
	return d
}
