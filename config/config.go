// Package config loads server configuration from defaults, .env files and
// GRADEPOINT_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GRADEPOINT"

// Config is the server configuration.
type Config struct {
	Env             string
	Port            int
	LogLevel        string
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// IsDevelopment reports whether the server runs locally.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("env", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("logLevel", "info")
	v.SetDefault("corsOrigins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("readTimeout", 15*time.Second)
	v.SetDefault("writeTimeout", 15*time.Second)
	v.SetDefault("idleTimeout", 60*time.Second)
	v.SetDefault("shutdownTimeout", 30*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env files from dir (".env.<env>" then ".env", both optional)
// and returns the resulting configuration. Variables already set in the
// environment win over the files.
func Load(dir string) (Config, error) {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = "development"
	}

	for _, name := range []string{".env." + strings.ToLower(env), ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, errors.Wrapf(err, "stat %s", path)
		}
		if err := godotenv.Load(path); err != nil {
			return Config{}, errors.Wrapf(err, "load %s", path)
		}
	}

	return FromViper(New())
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:             v.GetString("env"),
		Port:            v.GetInt("port"),
		LogLevel:        strings.ToLower(v.GetString("logLevel")),
		CORSOrigins:     splitList(v.GetStringSlice("corsOrigins")),
		ReadTimeout:     v.GetDuration("readTimeout"),
		WriteTimeout:    v.GetDuration("writeTimeout"),
		IdleTimeout:     v.GetDuration("idleTimeout"),
		ShutdownTimeout: v.GetDuration("shutdownTimeout"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

// splitList accepts both space and comma separated environment values.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
