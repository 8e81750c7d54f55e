package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/safar/partsbot/internal/chat"
	"github.com/safar/partsbot/internal/config"
	"github.com/safar/partsbot/internal/database"
	"github.com/safar/partsbot/internal/logger"
	"github.com/safar/partsbot/internal/schema"
	"github.com/safar/partsbot/internal/shop"
	"github.com/safar/partsbot/internal/telegram"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Build logger: %v", err)
	}
	defer logr.Sync()

	if err := cfg.Bot.Validate(); err != nil {
		logr.Fatal("Set BOT_TOKEN to the token issued by BotFather", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logr.Fatal("Connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := schema.Ensure(ctx, db, logr); err != nil {
		logr.Fatal("Initialize database", zap.Error(err))
	}

	svc := shop.New(db, logr)

	if stats, err := svc.Stats(ctx); err == nil {
		logr.Info("Catalog ready",
			zap.Int("products", stats.TotalProducts),
			zap.Int("categories", stats.TotalCategories),
			zap.Int("users", stats.TotalUsers),
			zap.Int("orders", stats.TotalOrders),
		)
	}

	tg, err := telegram.New(cfg.Bot.Token, logr)
	if err != nil {
		logr.Fatal("Connect to Telegram", zap.Error(err))
	}

	handler := chat.NewHandler(svc, tg, chat.Options{
		BotName:     cfg.Bot.Name,
		WebAppURL:   cfg.Bot.WebAppURL,
		AdminChatID: cfg.Bot.AdminChatID,
	}, logr)

	logr.Info("Bot started", zap.String("name", cfg.Bot.Name), zap.String("web_app", cfg.Bot.WebAppURL))
	if err := tg.Run(ctx, handler); err != nil {
		logr.Fatal("Bot stopped", zap.Error(err))
	}
	logr.Info("Bot shut down")
}
