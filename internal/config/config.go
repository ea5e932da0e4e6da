package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables
// and checked against the `validate` tags.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	S3       S3Config       `mapstructure:"s3"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required"`
	// BaseURL is only used by the request logger to render POST URLs.
	BaseURL string `mapstructure:"base_url"`
}

// Address returns the listen address for http.Server.
func (s ServerConfig) Address() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AllowAll reports whether every origin is permitted.
func (c CORSConfig) AllowAll() bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (Config, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (config Config, err error) {
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.port -> SERVER_PORT, plus the short names the service is deployed with.
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	_ = v.BindEnv("server.base_url", "BASE_URL", "SERVER_BASE_URL")
	_ = v.BindEnv("database.uri", "MONGO_URI", "DATABASE_URI")
	_ = v.BindEnv("database.name", "DATABASE_NAME")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.pretty", "LOG_PRETTY")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	// Unmarshal only sees keys viper already knows about.
	for _, key := range []string{"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name"} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.base_url", "")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercise_tracker")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("s3.region", "us-east-1")

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// Running on env vars and defaults only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	// CORS_ALLOWED_ORIGINS arrives as a comma separated string.
	config.CORS.AllowedOrigins = splitCSV(config.CORS.AllowedOrigins)

	if err = validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func splitCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
