package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/config"
	"github.com/iamdominic/portfolio-backend/internal/bootstrap"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
	"github.com/iamdominic/portfolio-backend/internal/projects/seed"
)

func main() {
	path := flag.String("file", "seed/projects.yaml", "YAML fixture with a top-level projects list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	f, err := os.Open(*path)
	if err != nil {
		zlog.Fatal("open seed file", zap.Error(err))
	}
	defer f.Close()

	projects, err := seed.Parse(f)
	if err != nil {
		zlog.Fatal("parse seed file", zap.Error(err))
	}

	ctx := logger.WithContext(context.Background(), zlog)
	stores, err := bootstrap.OpenStores(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("open stores", zap.Error(err))
	}
	defer stores.Close()

	res, err := seed.Apply(ctx, stores.Projects, projects)
	if err != nil {
		zlog.Error("seed failed", zap.Int("created", res.Created), zap.Error(err))
		return
	}
	zlog.Info("seed complete", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
}
