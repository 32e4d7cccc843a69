package main

import (
	"context"
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	"github.com/stahnma/gh-launch/internal/commands"
	"github.com/stahnma/gh-launch/internal/config"
	lambdapkg "github.com/stahnma/gh-launch/internal/lambda"
)

var (
	GitSHA   string
	GitDirty string
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		logrus.Fatalf("Error loading configuration: %v", err)
	}

	app, err := commands.NewApp(context.Background(), cfg, GitSHA, GitDirty)
	if err != nil {
		logrus.Fatalf("Error initializing application: %v", err)
	}

	if os.Getenv("LAMBDA_TASK_ROOT") != "" {
		if cfg.CacheBackend != config.BackendS3 {
			app.Log.Fatal("Lambda mode requires GH_LAUNCH_CACHE_BACKEND=s3")
		}
		awslambda.Start(lambdapkg.NewHandler(app.Launcher, app.Log))
	} else {
		rootCmd := app.NewRootCommand()
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
