package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skillcast/internal/config"
	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/db"
	"github.com/udisondev/skillcast/internal/game/input"
	"github.com/udisondev/skillcast/internal/game/skill"
	"github.com/udisondev/skillcast/internal/sim"
)

const ConfigPath = "config/skillsim.yaml"

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfgPath := ConfigPath
	if p := os.Getenv("SKILLCAST_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("skillsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick", cfg.TickInterval,
		"actors", len(cfg.Actors))

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var script sim.InputSource
	if cfg.InputScript != "" {
		s, err := input.LoadScript(cfg.InputScript)
		if err != nil {
			return fmt.Errorf("loading input script: %w", err)
		}
		slog.Info("input script loaded", "path", cfg.InputScript, "frames", s.Len(), "last_tick", s.LastTick())
		script = s
	}

	var loadouts *db.LoadoutRepository
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		version, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied", "version", version)

		loadouts = db.NewLoadoutRepository(database.Pool())
	}

	skillCfg := skill.Config{
		TickInterval:      cfg.TickInterval,
		FaceSpeed:         cfg.FaceSpeed,
		ActivateThreshold: cfg.ActivateThreshold,
	}

	tickMgr := sim.NewTickManager(cfg.TickInterval, cfg.MaxTicks)
	actors := make([]*sim.Actor, 0, len(cfg.Actors))
	for _, entry := range cfg.Actors {
		loadout := entry.Loadout.Model(entry.ID)
		if loadouts != nil {
			saved, err := loadouts.Load(ctx, entry.ID)
			if err != nil {
				return fmt.Errorf("loading loadout: %w", err)
			}
			if saved != nil {
				loadout = *saved
				slog.Info("restored loadout", "actor", entry.ID, "slots", loadout.Slots, "selected", loadout.Selected)
			}
		}

		actor := sim.NewActor(sim.ActorConfig{
			ID:       entry.ID,
			Position: entry.Position,
			Slots:    skill.SlotTableFromLoadout(loadout, catalog, nil),
			Selected: loadout.Selected,
			Input:    script,
			Skill:    skillCfg,
			Animator: logAnimator{actorID: entry.ID},
			Spawner:  logSpawner{actorID: entry.ID},
		})
		if err := tickMgr.Register(actor); err != nil {
			return fmt.Errorf("registering actor: %w", err)
		}
		actors = append(actors, actor)
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		// max_ticks ends the run without a signal; release the watcher.
		defer stop()
		if err := tickMgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig)
			tickMgr.Stop()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	for _, a := range actors {
		tickMgr.Unregister(a.ID())
	}

	if loadouts != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, a := range actors {
			if err := loadouts.Save(saveCtx, a.Loadout()); err != nil {
				return fmt.Errorf("saving loadout: %w", err)
			}
		}
		slog.Info("loadouts saved", "actors", len(actors))
	}

	slog.Info("skillsim stopped", "ticks", tickMgr.Ticks())
	return nil
}

func loadCatalog(cfg config.Simulation) (*data.Catalog, error) {
	if cfg.SkillsPath == "" {
		c, err := data.DefaultCatalog(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("loading skills: %w", err)
		}
		return c, nil
	}
	c, err := data.LoadCatalog(cfg.SkillsPath, cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("loading skills: %w", err)
	}
	return c, nil
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
