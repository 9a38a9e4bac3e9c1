// Command initdb applies the schema and, when SEED_FILE (or -seed) names
// a file, the starter data.  Both steps are idempotent.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/sports-session-scheduler/internal/config"
	"github.com/iliyamo/sports-session-scheduler/internal/database"
	"github.com/iliyamo/sports-session-scheduler/internal/logger"
)

func main() {
	_ = godotenv.Load()

	seedPath := flag.String("seed", os.Getenv("SEED_FILE"), "YAML seed file (optional)")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("apply schema")
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("schema applied")

	if *seedPath == "" {
		return
	}
	seed, err := database.LoadSeed(*seedPath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *seedPath).Msg("load seed")
	}
	if err := seed.Apply(ctx, db, cfg.BcryptCost); err != nil {
		logger.Fatal().Err(err).Msg("apply seed")
	}
	logger.Info().Str("file", *seedPath).Int("sports", len(seed.Sports)).Msg("seed applied")
}
