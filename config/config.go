package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	gatehttp "github.com/avelkon/bucketgate/http"
	"github.com/avelkon/bucketgate/identity"
	"github.com/avelkon/bucketgate/s3store"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for bucketgate.
type Config struct {
	Env    string               `mapstructure:"env"`
	Server ServerConfig         `mapstructure:"server"`
	Auth   AuthConfig           `mapstructure:"auth"`
	S3     s3store.Config       `mapstructure:"s3"`
	URLs   URLConfig            `mapstructure:"urls"`
	CORS   gatehttp.CORSConfig  `mapstructure:"cors"`
	Log    LogConfig            `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
	// VerifyTimeout bounds each outbound token-verification call, in
	// seconds. 0 disables the deadline.
	VerifyTimeout int `mapstructure:"verify_timeout" validate:"min=0"`
	// StrictNames rejects file names with path separators. Off by
	// default: callers historically passed names through verbatim.
	StrictNames bool `mapstructure:"strict_names"`
}

// AuthConfig selects and configures the token verifier.
type AuthConfig struct {
	Mode string              `mapstructure:"mode" validate:"required,oneof=oidc hmac"`
	OIDC identity.OIDCConfig `mapstructure:"oidc"`
	HMAC HMACConfig          `mapstructure:"hmac"`
}

// HMACConfig holds the shared secret for the dev/test verifier.
type HMACConfig struct {
	Secret string `mapstructure:"secret"`
}

// URLConfig holds the validity windows of issued URLs, in seconds.
type URLConfig struct {
	UploadTTL   int `mapstructure:"upload_ttl" validate:"min=1"`
	DownloadTTL int `mapstructure:"download_ttl" validate:"min=1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":        "server.port",
	"bucket":      "s3.bucket",
	"s3-endpoint": "s3.endpoint",
	"auth-mode":   "auth.mode",
	"log-level":   "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.verify_timeout", 5) // seconds
	v.SetDefault("server.strict_names", false)

	v.SetDefault("auth.mode", "oidc")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.use_path_style", false)

	v.SetDefault("urls.upload_ttl", 60)
	v.SetDefault("urls.download_ttl", 300)

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type"})

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("BUCKETGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// 7. Mode-dependent requirements the struct tags cannot express
	switch cfg.Auth.Mode {
	case "oidc":
		if cfg.Auth.OIDC.Issuer == "" && cfg.Auth.OIDC.JWKSURL == "" {
			return nil, errors.New("validate config: auth.oidc.issuer or auth.oidc.jwks_url is required in oidc mode")
		}
	case "hmac":
		if cfg.Auth.HMAC.Secret == "" {
			return nil, errors.New("validate config: auth.hmac.secret is required in hmac mode")
		}
	}

	return &cfg, nil
}
