package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alteredfree/altered-engine-go/internal/cards"
	"github.com/alteredfree/altered-engine-go/internal/config"
	"github.com/alteredfree/altered-engine-go/internal/game"
	"github.com/alteredfree/altered-engine-go/internal/game/rules"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	version    = "dev" // set via ldflags during build
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

	logger.Info("starting altered engine server",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
	)

	g, err := newDemoGame(cfg, logger)
	if err != nil {
		logger.Fatal("failed to assemble demo game", zap.Error(err))
	}

	h := newHub(g, logger)

	// Engine events drive both the structured log and client refreshes for
	// changes that happen outside a direct client action.
	g.Bus().Subscribe(func(evt rules.Event) {
		logger.Debug("engine event",
			zap.String("type", string(evt.Type)),
			zap.String("player", evt.PlayerID),
			zap.String("object", evt.ObjectID),
		)
		switch evt.Type {
		case rules.EventPhaseChanged, rules.EventGameEnded, rules.EventTiebreakerEntered:
			go h.broadcast()
		}
	})

	if err := g.Start(); err != nil {
		logger.Fatal("failed to start game", zap.Error(err))
	}
	logger.Info("demo game running",
		zap.Int("day", g.Day()),
		zap.String("phase", g.Phase().String()),
		zap.String("first_player", g.FirstPlayer()),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	srv := &http.Server{Addr: cfg.Server.Address, Handler: mux}

	go func() {
		logger.Info("websocket endpoint ready", zap.String("address", cfg.Server.Address+"/ws"))
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(serveErr))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newDemoGame hosts a two-seat game from the built-in card pool. Decisions
// run through the deterministic auto decider; clients drive the Afternoon
// actions over the websocket.
func newDemoGame(cfg *config.Config, logger *zap.Logger) (*game.Game, error) {
	deck1, err := cards.DemoDeck("CORE_H_SIERRA")
	if err != nil {
		return nil, err
	}
	deck2, err := cards.DemoDeck("CORE_H_KORO")
	if err != nil {
		return nil, err
	}

	registry, err := game.NewStaticRegistry(cards.Standard()...)
	if err != nil {
		return nil, err
	}

	opts := game.DefaultOptions()
	opts.VictoryThreshold = cfg.Rules.VictoryThreshold
	opts.MorningDraw = cfg.Rules.MorningDraw
	opts.InitialHand = cfg.Rules.InitialHand
	opts.ReserveLimit = cfg.Rules.ReserveLimit
	opts.LandmarkLimit = cfg.Rules.LandmarkLimit
	opts.Seed = cfg.Rules.Seed

	seats := []game.Seat{
		{PlayerID: "player1", Name: "Alice", Deck: deck1},
		{PlayerID: "player2", Name: "Bob", Deck: deck2},
	}
	return game.NewGame(opts, seats, registry, &game.AutoDecider{}, logger)
}

// initLogger initializes the zap logger based on configuration.
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
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
