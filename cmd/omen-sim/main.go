// Command omen-sim runs a scripted game session against the engine: it loads
// the card data, plays a few rounds, and prints the resulting game log.
// It is the reference harness for exercising the engine without a host.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/omenworks/omen-engine-go/internal/config"
	"github.com/omenworks/omen-engine-go/internal/game"
	"github.com/omenworks/omen-engine-go/internal/game/cards"
	"github.com/omenworks/omen-engine-go/internal/game/deckfile"
	"github.com/omenworks/omen-engine-go/internal/game/players"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	rounds     = flag.Int("rounds", 2, "number of rounds to simulate")
	seed       = flag.Uint64("seed", 0, "deterministic shuffle seed (0 = random)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	dbs, err := cards.LoadDatabases(cfg.Data.Dir)
	if err != nil {
		return err
	}
	decks, err := deckfile.Load(cfg.Data.DeckFile, dbs)
	if err != nil {
		return err
	}
	roster, err := players.LoadRoster(filepath.Join(cfg.Data.Dir, "players.json"))
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed))
	}

	engine, err := game.NewEngine(game.Params{
		Databases: dbs,
		Decks:     decks,
		Players:   roster,
		Logger:    logger,
		Rand:      rng,
		Config: game.Config{
			MarketSize: cfg.Game.MarketSize,
			MaxActions: cfg.Game.MaxActions,
		},
	})
	if err != nil {
		return err
	}

	logger.Info("simulation starting",
		zap.String("session_id", engine.ID()),
		zap.Int("rounds", *rounds),
	)

	for round := 0; round < *rounds; round++ {
		simulateRound(engine, logger)
	}

	snapshot := engine.Snapshot()
	logger.Info("simulation finished",
		zap.Int("log_entries", len(snapshot.Log)),
		zap.String("checksum", snapshot.Checksum()),
	)

	for _, entry := range snapshot.Log {
		if entry.Params != nil {
			fmt.Printf("%s  %s  %v\n", entry.Timestamp.Format("15:04:05.000"), entry.Key, entry.Params)
		} else {
			fmt.Printf("%s  %s\n", entry.Timestamp.Format("15:04:05.000"), entry.Key)
		}
	}
	return nil
}

// simulateRound plays one full round: every player moves and shops in the
// Action phase, faces an encounter in the Encounter phase, and the Mythos
// phase spawns a gate and a clue.
func simulateRound(engine *game.Engine, logger *zap.Logger) {
	for _, p := range engine.Players() {
		engine.MovePlayer(p.ID, "city01")
		for _, asset := range engine.MarketAssets() {
			if engine.CanTakeAction(p.ID, "acquire") {
				if bought := engine.BuyFromMarket(asset.ID); bought != nil {
					engine.RecordAction(p.ID, "acquire")
				}
				break
			}
		}
	}
	engine.NextPhase() // Action -> Encounter

	for _, p := range engine.Players() {
		locType, ok := engine.EncounterTypeFor(p.ID)
		if !ok {
			continue
		}
		card := engine.StartEncounter(p.ID, locType)
		if card == nil {
			// earlier encounter still pending or deck exhausted for this type
			continue
		}
		effects := engine.ResolveEncounter(true)
		if effects != nil {
			logger.Debug("encounter effects selected",
				zap.String("player_id", p.ID),
				zap.Int("effects", len(effects.Effects)),
			)
		}
		engine.ClearEncounter()
		engine.NextInvestigator()
	}
	engine.NextPhase() // Encounter -> Mythos

	if gateID, ok := engine.DrawGate(); ok {
		logger.Debug("gate opened", zap.String("gate_id", gateID))
	}
	if clueID, ok := engine.DrawClue(); ok {
		logger.Debug("clue placed", zap.String("clue_id", clueID))
	}
	engine.NextPhase() // Mythos -> Action, next round
}

// initLogger builds the zap logger from configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Encoding == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if cfg.Development {
		zapCfg.Development = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
