package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the config and cache directories.
const AppName = "gh-launch"

// Cache backends.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config holds application configuration loaded from the environment, an
// optional .env file and an optional config.yaml.
type Config struct {
	GitHubToken string
	DebugMode   bool

	ConfigDir string
	TokenFile string
	CacheFile string

	CacheBackend string
	S3Bucket     string
	S3Key        string
	AWSRegion    string

	RefreshKeyword string
	Icon           string
}

// FromEnvironment resolves the configuration. Environment variables win
// over config.yaml, which wins over the defaults. Variables are read with
// the GH_LAUNCH_ prefix; GITHUB_TOKEN and DEBUG are also honoured unprefixed.
func FromEnvironment() (Config, error) {
	configDir, err := configDir()
	if err != nil {
		return Config{}, err
	}
	for _, path := range []string{filepath.Join(configDir, ".env"), ".env"} {
		if err := godotenv.Load(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(err, errors.CodeInvalidConfig, "cannot load %s", path)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("GH_LAUNCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("github_token", "GH_LAUNCH_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("debug", "GH_LAUNCH_DEBUG", "DEBUG")

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	v.SetDefault("token_file", filepath.Join(configDir, "github_token"))
	v.SetDefault("cache_file", filepath.Join(cacheDir, AppName, "repositories.json"))
	v.SetDefault("cache_backend", BackendFile)
	v.SetDefault("s3_key", AppName+"/repositories.json")
	v.SetDefault("refresh_keyword", "refresh cache")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "cannot read config.yaml")
		}
	}

	cfg := Config{
		GitHubToken:    strings.TrimSpace(v.GetString("github_token")),
		DebugMode:      parseBool(v.GetString("debug")),
		ConfigDir:      configDir,
		TokenFile:      v.GetString("token_file"),
		CacheFile:      v.GetString("cache_file"),
		CacheBackend:   strings.ToLower(strings.TrimSpace(v.GetString("cache_backend"))),
		S3Bucket:       v.GetString("s3_bucket"),
		S3Key:          v.GetString("s3_key"),
		AWSRegion:      v.GetString("aws_region"),
		RefreshKeyword: v.GetString("refresh_keyword"),
		Icon:           v.GetString("icon"),
	}
	return cfg, cfg.Validate()
}

// Validate checks the backend settings.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case BackendFile:
		if c.CacheFile == "" {
			return errors.New(errors.CodeInvalidConfig, "cache_file must be set for the file backend")
		}
	case BackendS3:
		if c.S3Bucket == "" || c.S3Key == "" {
			return errors.New(errors.CodeInvalidConfig, "s3_bucket and s3_key must be set for the s3 backend")
		}
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown cache_backend %q (want %s or %s)", c.CacheBackend, BackendFile, BackendS3)
	}
	return nil
}

func configDir() (string, error) {
	if dir := os.Getenv("GH_LAUNCH_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidConfig, "cannot locate config directory")
	}
	return filepath.Join(base, AppName), nil
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s != "" && s != "0" && s != "false"
}
