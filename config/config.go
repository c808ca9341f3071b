package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	// Query agent specifics
	Jira   JiraConfig
	Locale LocaleConfig
	Engine EngineConfig

	// LLM Provider Abstraction (optional augmentation)
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// JiraConfig holds tracker connection settings.
type JiraConfig struct {
	BaseURL           string
	Email             string
	APIToken          string
	BearerToken       string
	MaxResults        int
	RequestsPerSecond float64
	ProjectCacheTTL   time.Duration
}

// LocaleConfig is the process-wide locale table for temporal resolution.
type LocaleConfig struct {
	Timezone            string
	WeekStart           string // "monday" or "sunday"
	FiscalQuarterOffset int
	FallbackWindowDays  int
}

// EngineConfig bounds variant execution.
type EngineConfig struct {
	MaxConcurrentVariants int
	PerVariantTimeout     time.Duration
	TotalTimeBudget       time.Duration
	MaxRetries            int
	RetryDelay            time.Duration
	AugmentTimeout        time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer.
type LLMConfig struct {
	Providers       []ProviderConfig
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      string
	MaxTotalTimeout string
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	BaseURL  string
	Model    string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Jira
	cfg.Jira.BaseURL = viper.GetString("jira.base_url")
	cfg.Jira.Email = viper.GetString("jira.email")
	cfg.Jira.APIToken = expandEnvVar(viper.GetString("jira.api_token"))
	cfg.Jira.BearerToken = expandEnvVar(viper.GetString("jira.bearer_token"))
	cfg.Jira.MaxResults = viper.GetInt("jira.max_results")
	cfg.Jira.RequestsPerSecond = viper.GetFloat64("jira.requests_per_second")
	cfg.Jira.ProjectCacheTTL = viper.GetDuration("jira.project_cache_ttl")
	if jiraURL := viper.GetString("jira_base_url"); jiraURL != "" {
		cfg.Jira.BaseURL = jiraURL
	}
	if jiraToken := viper.GetString("jira_api_token"); jiraToken != "" {
		cfg.Jira.APIToken = jiraToken
	}
	if cfg.Jira.BaseURL == "" {
		return nil, fmt.Errorf("jira.base_url is required")
	}

	// Locale
	cfg.Locale.Timezone = viper.GetString("locale.timezone")
	cfg.Locale.WeekStart = viper.GetString("locale.week_start")
	cfg.Locale.FiscalQuarterOffset = viper.GetInt("locale.fiscal_quarter_offset")
	cfg.Locale.FallbackWindowDays = viper.GetInt("locale.fallback_window_days")

	// Engine
	cfg.Engine.MaxConcurrentVariants = viper.GetInt("engine.max_concurrent_variants")
	cfg.Engine.PerVariantTimeout = viper.GetDuration("engine.per_variant_timeout")
	cfg.Engine.TotalTimeBudget = viper.GetDuration("engine.total_time_budget")
	cfg.Engine.MaxRetries = viper.GetInt("engine.max_retries")
	cfg.Engine.RetryDelay = viper.GetDuration("engine.retry_delay")
	cfg.Engine.AugmentTimeout = viper.GetDuration("engine.augment_timeout")

	// LLM Provider Abstraction (optional: zero providers means the
	// augmentation port stays a no-op)
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("jira.max_results", 50)
	viper.SetDefault("jira.requests_per_second", 5)
	viper.SetDefault("jira.project_cache_ttl", "10m")

	viper.SetDefault("locale.timezone", "Asia/Taipei")
	viper.SetDefault("locale.week_start", "monday")
	viper.SetDefault("locale.fiscal_quarter_offset", 0)
	viper.SetDefault("locale.fallback_window_days", 30)

	viper.SetDefault("engine.max_concurrent_variants", 3)
	viper.SetDefault("engine.per_variant_timeout", "15s")
	viper.SetDefault("engine.total_time_budget", "60s")
	viper.SetDefault("engine.max_retries", 2)
	viper.SetDefault("engine.retry_delay", "500ms")
	viper.SetDefault("engine.augment_timeout", "10s")

	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "30s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
