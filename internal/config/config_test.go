package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/errors"
)

// isolate points the config dir at a temp dir and clears every variable
// FromEnvironment reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GH_LAUNCH_CONFIG_DIR", dir)
	for _, key := range []string{
		"GITHUB_TOKEN", "DEBUG",
		"GH_LAUNCH_GITHUB_TOKEN", "GH_LAUNCH_DEBUG", "GH_LAUNCH_TOKEN_FILE",
		"GH_LAUNCH_CACHE_FILE", "GH_LAUNCH_CACHE_BACKEND", "GH_LAUNCH_S3_BUCKET",
		"GH_LAUNCH_S3_KEY", "GH_LAUNCH_AWS_REGION", "GH_LAUNCH_REFRESH_KEYWORD",
		"GH_LAUNCH_ICON",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestFromEnvironment_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GitHubToken != "" {
		t.Errorf("expected empty token, got %q", cfg.GitHubToken)
	}
	if cfg.DebugMode {
		t.Error("expected DebugMode false by default")
	}
	if cfg.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", cfg.ConfigDir, dir)
	}
	if cfg.TokenFile != filepath.Join(dir, "github_token") {
		t.Errorf("unexpected TokenFile %q", cfg.TokenFile)
	}
	if filepath.Base(cfg.CacheFile) != "repositories.json" || filepath.Base(filepath.Dir(cfg.CacheFile)) != AppName {
		t.Errorf("unexpected CacheFile %q", cfg.CacheFile)
	}
	if cfg.CacheBackend != BackendFile {
		t.Errorf("CacheBackend = %q, want file", cfg.CacheBackend)
	}
	if cfg.RefreshKeyword != "refresh cache" {
		t.Errorf("RefreshKeyword = %q", cfg.RefreshKeyword)
	}
}

func TestFromEnvironment_GitHubToken(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", " ghp_test123\n")

	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GitHubToken != "ghp_test123" {
		t.Errorf("got %q, want ghp_test123", cfg.GitHubToken)
	}
}

func TestFromEnvironment_PrefixedTokenWins(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "ghp_plain")
	t.Setenv("GH_LAUNCH_GITHUB_TOKEN", "ghp_prefixed")

	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GitHubToken != "ghp_prefixed" {
		t.Errorf("got %q, want ghp_prefixed", cfg.GitHubToken)
	}
}

func TestFromEnvironment_DebugMode(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run("DEBUG="+tt.val, func(t *testing.T) {
			isolate(t)
			t.Setenv("DEBUG", tt.val)
			cfg, err := FromEnvironment()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.DebugMode != tt.want {
				t.Errorf("DEBUG=%q: DebugMode=%v, want %v", tt.val, cfg.DebugMode, tt.want)
			}
		})
	}
}

func TestFromEnvironment_ConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := "refresh_keyword: sync repos\ncache_backend: s3\ns3_bucket: my-bucket\naws_region: eu-west-1\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RefreshKeyword != "sync repos" {
		t.Errorf("RefreshKeyword = %q", cfg.RefreshKeyword)
	}
	if cfg.CacheBackend != BackendS3 || cfg.S3Bucket != "my-bucket" || cfg.AWSRegion != "eu-west-1" {
		t.Errorf("unexpected s3 settings: %+v", cfg)
	}
	if cfg.S3Key != "gh-launch/repositories.json" {
		t.Errorf("S3Key default = %q", cfg.S3Key)
	}
}

func TestFromEnvironment_EnvOverridesConfigFile(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("refresh_keyword: from file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GH_LAUNCH_REFRESH_KEYWORD", "from env")

	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RefreshKeyword != "from env" {
		t.Errorf("RefreshKeyword = %q, want from env", cfg.RefreshKeyword)
	}
}

func TestFromEnvironment_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GH_LAUNCH_ICON=github.svg\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Icon != "github.svg" {
		t.Errorf("Icon = %q, want github.svg", cfg.Icon)
	}
}

func TestFromEnvironment_InvalidConfigFile(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("refresh_keyword: [unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := FromEnvironment()
	if errors.GetCode(err) != errors.CodeInvalidConfig {
		t.Errorf("expected invalid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"file", Config{CacheBackend: BackendFile, CacheFile: "/tmp/x.json"}, false},
		{"file without path", Config{CacheBackend: BackendFile}, true},
		{"s3", Config{CacheBackend: BackendS3, S3Bucket: "b", S3Key: "k"}, false},
		{"s3 without bucket", Config{CacheBackend: BackendS3, S3Key: "k"}, true},
		{"unknown", Config{CacheBackend: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
