package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/config"
	"github.com/levkar/milim-bot/internal/infra/postgres"
	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
	"github.com/levkar/milim-bot/internal/logger"
	"github.com/levkar/milim-bot/internal/seed"
)

func main() {
	path := flag.String("file", "assets/data/words.xlsx", "path to the vocabulary workbook")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	if err := postgres.Migrate(cfg.DB.URL); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	importer := seed.New(repository.NewWordRepository(pool), zl)

	result, err := importer.Import(ctx, *path)
	if err != nil {
		zl.Fatal("import failed", zap.Error(err))
	}

	zl.Info("seeding complete",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)
}
