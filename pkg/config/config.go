package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Rate engine settings.
	RateCacheTTL    time.Duration // freshness window of the in-memory current rate
	ProviderTimeout time.Duration // per-attempt bound for one upstream call
	RateUpdateLimit string        // ulule/limiter format, e.g. "10-M"

	// Upstream endpoints, overridable so tests can point providers at local servers.
	BISoapURL          string
	BIPageURL          string
	FrankfurterURL     string
	ExchangerateAPIURL string
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
	viper.SetDefault("RATE_CACHE_TTL", "6h")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_UPDATE_LIMIT", "10-M")
	viper.SetDefault("BI_SOAP_URL", "https://www.bi.go.id/biwebservice/wskursbi.asmx")
	viper.SetDefault("BI_PAGE_URL", "https://www.bi.go.id/id/statistik/informasi-kurs/jisdor")
	viper.SetDefault("FRANKFURTER_URL", "https://api.frankfurter.app")
	viper.SetDefault("EXCHANGERATE_API_URL", "https://open.er-api.com")

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
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateCacheTTL = viper.GetDuration("RATE_CACHE_TTL")
	if cfg.RateCacheTTL <= 0 {
		log.Printf("Warning: Invalid RATE_CACHE_TTL. Defaulting to 6h.\n")
		cfg.RateCacheTTL = 6 * time.Hour
	}

	cfg.ProviderTimeout = viper.GetDuration("PROVIDER_TIMEOUT")
	if cfg.ProviderTimeout <= 0 {
		log.Printf("Warning: Invalid PROVIDER_TIMEOUT. Defaulting to 10s.\n")
		cfg.ProviderTimeout = 10 * time.Second
	}

	cfg.RateUpdateLimit = viper.GetString("RATE_UPDATE_LIMIT")
	cfg.BISoapURL = viper.GetString("BI_SOAP_URL")
	cfg.BIPageURL = viper.GetString("BI_PAGE_URL")
	cfg.FrankfurterURL = viper.GetString("FRANKFURTER_URL")
	cfg.ExchangerateAPIURL = viper.GetString("EXCHANGERATE_API_URL")

	return cfg, nil
}
