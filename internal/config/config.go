package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ClientConfig drives the contractor form front-end.
type ClientConfig struct {
	APIURL             string
	APIToken           string
	SubmitTimeout      time.Duration
	ImageLookupTimeout time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Client      ClientConfig
}

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"env":           "APP_ENV",
	"api-url":       "CONTRACTOR_API_URL",
	"api-token":     "CONTRACTOR_API_TOKEN",
	"timeout":       "CONTRACTOR_SUBMIT_TIMEOUT",
	"image-timeout": "IMAGE_LOOKUP_TIMEOUT",
	"http-port":     "HTTP_PORT",
}

// Load reads app.env and the environment. Flags from fs, when set, override
// both.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Client: ClientConfig{
			APIURL:             v.GetString("CONTRACTOR_API_URL"),
			APIToken:           v.GetString("CONTRACTOR_API_TOKEN"),
			SubmitTimeout:      v.GetDuration("CONTRACTOR_SUBMIT_TIMEOUT"),
			ImageLookupTimeout: v.GetDuration("IMAGE_LOOKUP_TIMEOUT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Client.SubmitTimeout <= 0 {
		cfg.Client.SubmitTimeout = 30 * time.Second
	}
	if cfg.Client.ImageLookupTimeout <= 0 {
		cfg.Client.ImageLookupTimeout = 10 * time.Second
	}

	return cfg, nil
}

func (c *Config) ValidateServer() error {
	if c.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}

func (c *Config) ValidateClient() error {
	if c.Client.APIURL == "" {
		return fmt.Errorf("CONTRACTOR_API_URL is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
