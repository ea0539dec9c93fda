package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// ConfigPathEnvVar overrides the optional YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Port      string          `koanf:"port"`
	Store     StoreConfig     `koanf:"store"`
	Firebase  FirebaseConfig  `koanf:"firebase"`
	Auth      AuthConfig      `koanf:"auth"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Match     MatchConfig     `koanf:"match"`
	Admin     AdminConfig     `koanf:"admin"`
	Resend    ResendConfig    `koanf:"resend"`
	Log       LogConfig       `koanf:"log"`
}

type StoreConfig struct {
	Backend string `koanf:"backend"`
}

type FirebaseConfig struct {
	ProjectID       string `koanf:"project_id"`
	CredentialsJSON string `koanf:"credentials_json"`
}

type AuthConfig struct {
	JWTSecret       string `koanf:"jwt_secret"`
	TokenTTLMinutes int    `koanf:"token_ttl_minutes"`
	BcryptCost      int    `koanf:"bcrypt_cost"`
}

// TokenTTL is the lifetime of issued access tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type CORSConfig struct {
	Hosts []string `koanf:"hosts"`
}

// A zero limit disables that limiter.
type RateLimitConfig struct {
	RegisterPerHour int `koanf:"register_per_hour"`
	LoginPerMinute  int `koanf:"login_per_minute"`
}

type MatchConfig struct {
	Timezone string `koanf:"timezone"`
}

// Location loads the timezone kickoff times are expressed in.
func (m MatchConfig) Location() (*time.Location, error) {
	return time.LoadLocation(m.Timezone)
}

// AdminConfig seeds an administrator account at startup when MSV and
// Password are both set.
type AdminConfig struct {
	MSV      string `koanf:"msv"`
	Password string `koanf:"password"`
	FullName string `koanf:"full_name"`
	Phone    string `koanf:"phone"`
}

type ResendConfig struct {
	Key      string   `koanf:"key"`
	From     string   `koanf:"from"`
	NotifyTo []string `koanf:"notify_to"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Port:  "8000",
		Store: StoreConfig{Backend: BackendFirestore},
		Auth: AuthConfig{
			TokenTTLMinutes: 60,
			BcryptCost:      10,
		},
		CORS: CORSConfig{Hosts: []string{"*"}},
		RateLimit: RateLimitConfig{
			RegisterPerHour: 5,
			LoginPerMinute:  10,
		},
		Match: MatchConfig{Timezone: "UTC"},
		Admin: AdminConfig{
			FullName: "System Admin",
			Phone:    "0900000000",
		},
		Resend: ResendConfig{From: "onboarding@resend.dev"},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

var envMappings = map[string]string{
	"port":                         "port",
	"store_backend":                "store.backend",
	"firebase_project_id":          "firebase.project_id",
	"firebase_credentials_json":    "firebase.credentials_json",
	"jwt_secret":                   "auth.jwt_secret",
	"access_token_expire_minutes":  "auth.token_ttl_minutes",
	"bcrypt_cost":                  "auth.bcrypt_cost",
	"cors_hosts":                   "cors.hosts",
	"rate_limit_register_per_hour": "rate_limit.register_per_hour",
	"rate_limit_login_per_minute":  "rate_limit.login_per_minute",
	"match_timezone":               "match.timezone",
	"admin_msv":                    "admin.msv",
	"admin_password":               "admin.password",
	"admin_full_name":              "admin.full_name",
	"admin_phone":                  "admin.phone",
	"resend_key":                   "resend.key",
	"resend_from":                  "resend.from",
	"resend_notify_to":             "resend.notify_to",
	"log_level":                    "log.level",
	"log_format":                   "log.format",
}

// slicePaths hold comma separated lists when they come from the environment.
var slicePaths = []string{"cors.hosts", "resend.notify_to"}

// envTransformFunc maps known variables to koanf paths and drops the rest.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load layers defaults, the optional YAML file and the environment, in that
// order, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitSlices(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitSlices(k *koanf.Koanf) error {
	for _, path := range slicePaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.Store.Backend {
	case BackendFirestore:
		if c.Firebase.ProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firestore backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if _, err := c.Match.Location(); err != nil {
		return fmt.Errorf("invalid MATCH_TIMEZONE: %w", err)
	}
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	return nil
}
