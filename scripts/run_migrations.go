package main

import (
	"context"
	"log"
	"os"

	"github.com/safar/partsbot/internal/config"
	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/logger"
	"github.com/safar/partsbot/internal/schema"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/run_migrations.go [up|down|seed]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Build logger: %v", err)
	}
	defer logr.Sync()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logr.Fatal("Connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "up":
		err = schema.Migrate(ctx, db, schema.Up, logr)
	case "down":
		err = schema.Migrate(ctx, db, schema.Down, logr)
	case "seed":
		err = schema.Seed(ctx, db, logr)
	default:
		logr.Fatal("Direction must be 'up', 'down' or 'seed'", zap.String("got", os.Args[1]))
	}
	if err != nil {
		logr.Fatal("Migration failed", zap.String("command", os.Args[1]), zap.Error(err))
	}

	logr.Info("Done", zap.String("command", os.Args[1]))
}
