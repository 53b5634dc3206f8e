package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MissingAPIKeyBanner is shown once when the assistant cannot be initialized.
const MissingAPIKeyBanner = "Failed to initialize AI Assistant. Please check your API key and try again."

// ErrMissingAPIKey is reported at startup when API_KEY is empty.
var ErrMissingAPIKey = errors.New("API_KEY environment variable not set")

type Config struct {
	AppPort            int           `mapstructure:"APP_PORT"`
	AppEnv             string        `mapstructure:"APP_ENV"`
	APIKey             string        `mapstructure:"API_KEY"`
	LLMProvider        string        `mapstructure:"LLM_PROVIDER"`
	LLMBaseURL         string        `mapstructure:"LLM_BASE_URL"`
	LLMModel           string        `mapstructure:"LLM_MODEL"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	StaticDir          string        `mapstructure:"STATIC_DIR"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Source is the config file that was read, empty when only env and defaults apply.
	Source string `mapstructure:"-"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_KEY", "")
	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("LLM_BASE_URL", "")
	v.SetDefault("LLM_MODEL", "gemini-2.5-flash")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STATIC_DIR", "./frontend/dist")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Source = v.ConfigFileUsed()

	return &cfg, nil
}

// Validate reports configuration problems that disable the assistant. The
// server still starts; AI-backed endpoints answer with MissingAPIKeyBanner.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
