package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "BREVIO"
	configName = "config"
	configType = "toml"
	homeDir    = ".brevio"

	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 60 * time.Second

	KeyBaseURL       = "base_url"
	KeyAPIKey        = "api_key"
	KeyTimeout       = "timeout"
	KeyHome          = "home"
	KeyWorkspacePath = "workspace.path"
	KeyLogPath       = "log.path"
	KeySecrets       = "secrets.backend"

	SecretsAuto = "auto"
	SecretsFile = "file"
	SecretsPass = "pass"
)

type Config struct {
	BaseURL       string        `validate:"required,url"`
	APIKey        string        `validate:"-"`
	Timeout       time.Duration `validate:"gt=0"`
	Home          string        `validate:"required"`
	WorkspacePath string        `validate:"required"`
	LogPath       string        `validate:"required"`
	SecretsDir    string        `validate:"required"`

	// SecretsBackend is auto (pass with a file fallback), file or pass.
	SecretsBackend string `validate:"oneof=auto file pass"`
}

// Load resolves configuration from, in order of precedence, BREVIO_*
// environment variables (a .env file in the working directory is loaded
// first and never overrides the real environment), <home>/config.toml and
// built-in defaults. The viper instance is populated so adapters can read
// their own keys from it.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyHome, filepath.Join(userHome, homeDir))
	home := v.GetString(KeyHome)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout.String())
	v.SetDefault(KeyWorkspacePath, filepath.Join(home, "workspace.toml"))
	v.SetDefault(KeyLogPath, filepath.Join(home, "logs", "brevio.log"))
	v.SetDefault(KeySecrets, SecretsAuto)

	timeout, err := parseTimeout(v.GetString(KeyTimeout))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString(KeyBaseURL)), "/"),
		APIKey:         strings.TrimSpace(v.GetString(KeyAPIKey)),
		Timeout:        timeout,
		Home:           home,
		WorkspacePath:  v.GetString(KeyWorkspacePath),
		LogPath:        v.GetString(KeyLogPath),
		SecretsDir:     filepath.Join(home, "secrets"),
		SecretsBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecrets))),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// parseTimeout accepts a Go duration ("45s") or a bare number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeout, nil
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", raw, err)
	}

	return timeout, nil
}
