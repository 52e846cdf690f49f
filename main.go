package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/qkart/storefront/internal/cli"
	"github.com/qkart/storefront/internal/core"
	"github.com/qkart/storefront/internal/storefront/model"
	logx "github.com/qkart/storefront/pkg/logger"
	pkgredis "github.com/qkart/storefront/pkg/redis"
)

// AppConfig defines all configurable parameters for the storefront client,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	// Storefront
	API     model.APIConfig
	Search  model.SearchConfig
	Session model.SessionConfig
	Mock    model.MockServerConfig
}

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(envCfg.Environment),
		Level:       envCfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := cli.Execute(ctx, cli.Config{
		API:        envCfg.API,
		Search:     envCfg.Search,
		Session:    envCfg.Session,
		Redis:      envCfg.Redis,
		MockServer: envCfg.Mock,
	})
	stop()
	os.Exit(code)
}
