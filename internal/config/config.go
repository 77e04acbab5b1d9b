/**
 * @description
 * Configuration loader for the FoodLens Backend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 * - standard "fmt": For error reporting
 *
 * @notes
 * - API credentials are injected as opaque strings; nothing in the core inspects them.
 * - Validation is split per entry point: the API server only needs a database,
 *   the pipeline additionally needs external API credentials.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	Kroger      KrogerConfig
	Spoonacular SpoonacularConfig
	Pipeline    PipelineConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
}

// DBConfig holds SQLite settings
type DBConfig struct {
	Path string
}

// RedisConfig holds Redis settings. An empty URL means "run an in-process
// miniredis instead of connecting out".
type RedisConfig struct {
	URL string
}

// KrogerConfig holds Kroger API endpoints and client credentials
type KrogerConfig struct {
	APIURL       string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Zipcode      string
}

// SpoonacularConfig holds Spoonacular API settings
type SpoonacularConfig struct {
	APIURL string
	APIKey string
}

// PipelineConfig holds ingestion run settings
type PipelineConfig struct {
	InsertCap       int
	FetchLimit      int
	MealFetchLimit  int
	SearchTerms     []string
	MealSearchTerms []string
	OutputDir       string
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "foodproject.db"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Kroger: KrogerConfig{
			APIURL:       getEnv("KROGER_API_URL", "https://api.kroger.com/v1"),
			TokenURL:     getEnv("KROGER_TOKEN_URL", "https://api.kroger.com/v1/connect/oauth2/token"),
			ClientID:     sanitizeCredential(getEnv("KROGER_CLIENT_ID", "")),
			ClientSecret: sanitizeCredential(getEnv("KROGER_CLIENT_SECRET", "")),
			Zipcode:      getEnv("ZIPCODE", "48104"),
		},
		Spoonacular: SpoonacularConfig{
			APIURL: getEnv("SPOONACULAR_API_URL", "https://api.spoonacular.com"),
			APIKey: sanitizeCredential(getEnv("SPOONACULAR_API_KEY", "")),
		},
		Pipeline: PipelineConfig{
			InsertCap:       getEnvAsInt("INSERT_CAP", 25),
			FetchLimit:      getEnvAsInt("FETCH_LIMIT", 25),
			MealFetchLimit:  getEnvAsInt("MEAL_FETCH_LIMIT", 35),
			SearchTerms:     getEnvAsList("SEARCH_TERMS", []string{"sugar", "milk", "flour", "eggs", "ham", "water", "bread", "cheese", "butter"}),
			MealSearchTerms: getEnvAsList("MEAL_SEARCH_TERMS", []string{"pasta", "chicken", "salad", "soup", "vegetarian"}),
			OutputDir:       getEnv("OUTPUT_DIR", "."),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks invariants that hold for every entry point
func validate(cfg *Config) error {
	if cfg.DB.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if cfg.Pipeline.InsertCap <= 0 {
		return fmt.Errorf("INSERT_CAP must be positive, got %d", cfg.Pipeline.InsertCap)
	}
	return nil
}

// ValidatePipeline checks the extra variables the ETL run needs.
// The API server can start without API credentials, the pipeline cannot.
func (c *Config) ValidatePipeline() error {
	if c.Kroger.ClientID == "" || c.Kroger.ClientSecret == "" {
		return fmt.Errorf("KROGER_CLIENT_ID and KROGER_CLIENT_SECRET are required for ingestion")
	}
	if c.Spoonacular.APIKey == "" {
		return fmt.Errorf("SPOONACULAR_API_KEY is required for ingestion")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func sanitizeCredential(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.Trim(trimmed, "\"")
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper to get env var as a comma-separated list
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
