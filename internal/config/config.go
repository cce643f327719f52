package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the dashboard engine.
type Config struct {
	App    AppConfig
	Graph  GraphConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Poll   PollConfig
	Stats  StatsConfig
	Access AccessConfig
}

// AppConfig controls engine level behavior.
type AppConfig struct {
	Name       string
	Env        string
	Version    string
	UserEmail  string
	Department string
}

// GraphConfig holds remote record store connection values.
type GraphConfig struct {
	BaseURL               string
	Hostname              string
	SitePath              string
	TicketsListName       string
	UserInfoListName      string
	PageSize              int
	RequestTimeoutSeconds int
	LookupBatchLimit      int
	AccessToken           string
}

// RedisConfig holds the optional shared name-cache connection values. The
// in-memory cache is used when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// PollConfig controls the ambient refresh loop.
type PollConfig struct {
	IntervalSeconds int
}

// StatsConfig controls aggregation output sizes. The reason grouping is
// truncated to a different top-N depending on the consuming view.
type StatsConfig struct {
	TopReasonsSummary int
	TopReasonsReport  int
}

// AccessConfig maps user emails to the departments they may view, as a JSON
// object of email -> department list.
type AccessConfig struct {
	MappingJSON string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:       getEnv("APP_NAME", "helpdesk-dashboard"),
			Env:        getEnv("APP_ENV", "development"),
			Version:    getEnv("APP_VERSION", "dev"),
			UserEmail:  getEnv("DASHBOARD_USER_EMAIL", ""),
			Department: getEnv("DASHBOARD_DEPARTMENT", ""),
		},
		Graph: GraphConfig{
			BaseURL:               getEnv("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
			Hostname:              getEnv("SHAREPOINT_HOSTNAME", "openmindservices.sharepoint.com"),
			SitePath:              getEnv("SHAREPOINT_SITE_PATH", "/sites/InternalHelpdesk"),
			TicketsListName:       getEnv("TICKETS_LIST_NAME", "Tickets Management"),
			UserInfoListName:      getEnv("USER_INFO_LIST_NAME", "User Information List"),
			PageSize:              getEnvAsInt("GRAPH_PAGE_SIZE", 1000),
			RequestTimeoutSeconds: getEnvAsInt("GRAPH_REQUEST_TIMEOUT_SECONDS", 30),
			LookupBatchLimit:      getEnvAsInt("LOOKUP_BATCH_LIMIT", 30),
			AccessToken:           os.Getenv("GRAPH_ACCESS_TOKEN"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Poll: PollConfig{
			IntervalSeconds: getEnvAsInt("POLL_INTERVAL_SECONDS", 30),
		},
		Stats: StatsConfig{
			TopReasonsSummary: getEnvAsInt("STATS_TOP_REASONS_SUMMARY", 5),
			TopReasonsReport:  getEnvAsInt("STATS_TOP_REASONS_REPORT", 10),
		},
		Access: AccessConfig{
			MappingJSON: os.Getenv("DEPARTMENT_ACCESS_MAP"),
		},
	}

	return cfg, nil
}

// RequestTimeout returns the per-call remote timeout duration.
func (g GraphConfig) RequestTimeout() time.Duration {
	if g.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(g.RequestTimeoutSeconds) * time.Second
}

// Interval returns the poll interval duration.
func (p PollConfig) Interval() time.Duration {
	if p.IntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.IntervalSeconds) * time.Second
}

// Mapping decodes the email to departments table. An empty value yields an
// empty table (nobody has access until configured).
func (a AccessConfig) Mapping() (map[string][]string, error) {
	if a.MappingJSON == "" {
		return map[string][]string{}, nil
	}
	mapping := map[string][]string{}
	if err := json.Unmarshal([]byte(a.MappingJSON), &mapping); err != nil {
		return nil, fmt.Errorf("invalid DEPARTMENT_ACCESS_MAP: %w", err)
	}
	return mapping, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
