package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stahnma/gh-launch/internal/cache"
	"github.com/stahnma/gh-launch/internal/config"
	"github.com/stahnma/gh-launch/internal/credential"
	ghub "github.com/stahnma/gh-launch/internal/github"
	"github.com/stahnma/gh-launch/internal/launcher"
)

// App holds shared application state.
type App struct {
	Config      config.Config
	Log         *logrus.Logger
	Credentials credential.Store
	Cache       cache.Store
	Launcher    *launcher.Coordinator
	GitSHA      string
	GitDirty    string
}

// NewLogger returns the logger used by every component: text to stderr,
// debug level when DebugMode is set.
func NewLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	if cfg.DebugMode {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// NewApp creates a new App from the given configuration.
func NewApp(ctx context.Context, cfg config.Config, gitSHA, gitDirty string) (*App, error) {
	log := NewLogger(cfg)

	var store cache.Store
	switch cfg.CacheBackend {
	case config.BackendS3:
		s3Store, err := cache.NewS3StoreFromEnvironment(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Key, log)
		if err != nil {
			return nil, fmt.Errorf("configuring s3 cache: %w", err)
		}
		store = s3Store
	default:
		store = cache.NewFileStore(cfg.CacheFile, log)
	}

	creds := credential.EnvStore{
		Token: cfg.GitHubToken,
		Next:  credential.NewFileStore(cfg.TokenFile),
	}

	// Keep stdout for items; the browser helper echoes to it otherwise.
	browser.Stdout = os.Stderr

	return newApp(cfg, log, creds, store, ghub.NewSource(log), launcher.OpenerFunc(browser.OpenURL), gitSHA, gitDirty), nil
}

func newApp(cfg config.Config, log *logrus.Logger, creds credential.Store, store cache.Store,
	source launcher.Source, opener launcher.Opener, gitSHA, gitDirty string) *App {
	return &App{
		Config:      cfg,
		Log:         log,
		Credentials: creds,
		Cache:       store,
		Launcher: &launcher.Coordinator{
			Credentials:    creds,
			Cache:          store,
			Source:         source,
			Opener:         opener,
			RefreshKeyword: cfg.RefreshKeyword,
			Icon:           cfg.Icon,
			Log:            log,
		},
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gh-launch",
		Short: "Search your GitHub repositories from a launcher.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.Config.DebugMode && a.Log != nil {
				a.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().BoolVar(&a.Config.DebugMode, "debug", a.Config.DebugMode, "Enable debug logging")

	rootCmd.AddCommand(a.newQueryCommand())
	rootCmd.AddCommand(a.newRunCommand())
	rootCmd.AddCommand(a.newRefreshCommand())
	rootCmd.AddCommand(a.newTokenCommand())
	rootCmd.AddCommand(a.newStatusCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}
