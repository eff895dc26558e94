package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console backend.
// The values are read by Viper from an optional config file and environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // dev | prod
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory | mongo
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PublicBaseURL   string        `mapstructure:"public_base_url"` // defaults to <endpoint>/<bucket>
	UploadExpiry    time.Duration `mapstructure:"upload_expiry"`
}

// Enabled reports whether video uploads can be offered.
func (c S3Config) Enabled() bool {
	return c.BucketName != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// AuthConfig gates the console behind a single operator password.
// Both fields empty means the console is open.
type AuthConfig struct {
	PasswordHash string        `mapstructure:"password_hash"` // bcrypt
	JWTSecret    string        `mapstructure:"jwt_secret"`
	Expiration   time.Duration `mapstructure:"expiration"`
}

func (c AuthConfig) Enabled() bool {
	return c.PasswordHash != "" && c.JWTSecret != ""
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"` // gemini | openai
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"` // openai-compatible endpoint
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from path/config.yaml (optional) and the environment.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	// the generation key is also accepted under the names the web console used
	if err = v.BindEnv("ai.api_key", "AI_API_KEY", "API_KEY", "GEMINI_API_KEY"); err != nil {
		return config, err
	}

	v.SetDefault("server.address", ":8080")
	v.SetDefault("app.env", "dev")
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "trainerpro")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.upload_expiry", "15m")
	v.SetDefault("auth.expiration", "12h")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.language", "Brazilian Portuguese")
	v.SetDefault("ai.timeout", "90s")
	// Unmarshal only sees keys viper knows about; register the rest so env overrides reach them.
	for _, key := range []string{
		"s3.endpoint", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name", "s3.public_base_url",
		"auth.password_hash", "auth.jwt_secret", "ai.model",
	} {
		v.SetDefault(key, "")
	}

	// the file is optional; env vars and defaults are enough to run
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, config.validate()
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "mongo":
	default:
		return fmt.Errorf("storage.driver %q: want memory or mongo", c.Storage.Driver)
	}
	switch c.AI.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("ai.provider %q: want gemini or openai", c.AI.Provider)
	}
	if (c.Auth.PasswordHash == "") != (c.Auth.JWTSecret == "") {
		return errors.New("auth.password_hash and auth.jwt_secret must be set together")
	}
	return nil
}
