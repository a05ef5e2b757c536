// Package main runs one party-versus-monsters encounter over stdin/stdout.
// It wires together configuration, logging, tracing, the archetype catalog,
// and the roster.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rpgbattle/internal/config"
	"github.com/cory-johannsen/rpgbattle/internal/game/combat"
	"github.com/cory-johannsen/rpgbattle/internal/game/dice"
	"github.com/cory-johannsen/rpgbattle/internal/game/roster"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
	"github.com/cory-johannsen/rpgbattle/internal/observability"
	"github.com/cory-johannsen/rpgbattle/internal/telemetry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run wires and plays one battle, returning the process exit code.
//
// Setup failures after the logger exists are logged and reported through
// the exit code so deferred log and span flushing always runs.
func run(args []string, in io.Reader, out io.Writer) int {
	flags := flag.NewFlagSet("battle", flag.ContinueOnError)
	configPath := flags.String("config", "configs/dev.yaml", "path to configuration file")
	rosterPath := flags.String("roster", "", "path to roster YAML (overrides battle.roster)")
	envFile := flags.String("env", ".env", "optional dotenv file with RPG_* and OTEL_* variables")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// A missing dotenv file is normal outside local development.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading %s: %v", *envFile, err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("loading config: %v", err)
		return 1
	}
	if *rosterPath != "" {
		cfg.Battle.Roster = *rosterPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Printf("initializing logger: %v", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Error("initializing telemetry", zap.Error(err))
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("flushing telemetry", zap.Error(err))
		}
	}()

	cat, err := loadCatalog(cfg.Battle)
	if err != nil {
		logger.Error("loading archetypes", zap.Error(err))
		return 1
	}
	if err := combat.CheckCatalog(cat); err != nil {
		logger.Error("checking archetypes", zap.Error(err))
		return 1
	}

	participants, err := roster.Load(cfg.Battle.Roster, cat)
	if err != nil {
		logger.Error("loading roster", zap.Error(err))
		return 1
	}
	logger.Info("roster loaded",
		zap.String("path", cfg.Battle.Roster),
		zap.Int("participants", len(participants)),
	)

	battle := combat.NewBattle(participants, newPicker(cfg.Battle, logger), logger)
	if err := NewConsole(battle, in, out).Run(ctx); err != nil {
		logger.Error("battle aborted", zap.Error(err))
		return 1
	}
	return 0
}

func loadCatalog(cfg config.BattleConfig) (*unit.Catalog, error) {
	if cfg.Archetypes == "" {
		return unit.DefaultCatalog()
	}
	data, err := os.ReadFile(cfg.Archetypes)
	if err != nil {
		return nil, fmt.Errorf("reading archetypes %q: %w", cfg.Archetypes, err)
	}
	return unit.LoadCatalog(data)
}

func newPicker(cfg config.BattleConfig, logger *zap.Logger) combat.TargetPicker {
	if cfg.Targeting == config.TargetingFirst {
		return combat.FirstPicker
	}
	src := dice.NewCryptoSource()
	if cfg.Seed != 0 {
		src = dice.NewSeededSource(cfg.Seed)
	}
	return combat.NewRandomPicker(dice.NewLoggedSource(src, logger.Named("targeting")))
}
