package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/lockfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/memory"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/sqlite"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/adapters/telemetry"
	"go.trai.ch/crate/internal/adapters/vulnfeed" //nolint:depguard // Wired in app layer
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
	"go.trai.ch/crate/internal/engine/envmgr"
	"go.trai.ch/crate/internal/engine/solver"
	"go.trai.ch/zerr"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// DefaultEnv is the environment created and selected at startup,
// mirroring the implicit default installation target.
const DefaultEnv = "default"

// Components bundles the objects the CLI entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tele, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := loader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	sources, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}

	var feed ports.VulnerabilityFeed
	if cfg.AdvisoriesPath != "" {
		feed = vulnfeed.NewFileFeed(cfg.AdvisoriesPath)
	}

	mgr := envmgr.New(solver.New(sources, log), sources, feed, log)
	if err := mgr.CreateEnv(DefaultEnv); err != nil {
		return nil, err
	}
	if err := mgr.SwitchEnv(DefaultEnv); err != nil {
		return nil, err
	}

	locks := lockfile.NewFileStore(cfg.LockDir, log)
	return New(mgr, locks, tele, log), nil
}

// buildSources constructs the configured package sources in priority
// order.
func buildSources(cfg domain.Config) ([]ports.SourceEntry, error) {
	entries := make([]ports.SourceEntry, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		var (
			src ports.Source
			err error
		)
		switch sc.Kind {
		case domain.SourceIndex:
			src, err = memory.Load(sc.Paths...)
		case domain.SourceSQLite:
			src, err = sqlite.Open(sc.Paths[0])
		default:
			err = zerr.With(zerr.New("unknown source kind"), "kind", string(sc.Kind))
		}
		if err != nil {
			return nil, zerr.With(err, "source", sc.Name)
		}
		entries = append(entries, ports.SourceEntry{
			Name:   sc.Name,
			Source: src,
			Online: sc.Online,
		})
	}
	return entries, nil
}
