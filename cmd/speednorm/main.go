package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/speednorm/pkg/config"
	"github.com/umputun/speednorm/pkg/controller"
	"github.com/umputun/speednorm/pkg/criteria"
	"github.com/umputun/speednorm/pkg/domain"
	"github.com/umputun/speednorm/pkg/engine"
	"github.com/umputun/speednorm/pkg/metrics"
	"github.com/umputun/speednorm/pkg/mpv"
	"github.com/umputun/speednorm/pkg/repository"
	"github.com/umputun/speednorm/pkg/scheduler"
	"github.com/umputun/speednorm/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, built-in defaults if empty"`
	Socket string `short:"s" long:"socket" env:"MPV_SOCKET" description:"mpv IPC socket, overrides config"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting speednorm version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires storage, criteria, mpv, the rate controller and the API, and blocks
// until the context is canceled or mpv goes away
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lock, err := acquireLock(cfg.Player.Socket)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			lgr.Printf("[WARN] failed to release lock %s: %v", lock.Path(), err)
		}
	}()

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	client, err := mpv.Dial(ctx, cfg.Player.Socket, mpv.DialOpts{Timeout: cfg.Player.Timeout, Retries: cfg.Player.DialRetries})
	if err != nil {
		return fmt.Errorf("failed to connect to mpv: %w", err)
	}
	defer client.Close()
	player := mpv.NewPlayer(client)

	stats := metrics.New()

	// the manager notifies the controller, created right after, about edits
	var ctrl *controller.Controller
	critManager := criteria.NewManager(criteria.Config{
		Store:    repos.Setting,
		Defaults: cfg.DefaultCriteria(),
		OnChange: func(ctx context.Context, c domain.Criteria) error { return ctrl.UpdateCriteria(ctx, c) },
	})
	ctrl = controller.New(controller.Config{
		Engine:         cfg.EngineSettings(),
		Criteria:       critManager.Load(ctx),
		WriteTagWindow: cfg.Engine.WriteTagWindow,
	}, player, player, stats.Journal(repos.Decision))
	stats.ObserveStatus(ctrl)

	srv := server.New(cfg, ctrl, critManager, repos.Decision, revision, opts.Debug, server.WithMetrics(stats.Handler()))

	sched := scheduler.NewScheduler(scheduler.Params{Journal: repos.Decision, Retention: cfg.Database.JournalRetention})
	sched.Start(ctx)
	defer sched.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ctrl.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		// pick up a file that was already playing before we connected
		if err := ctrl.Post(gctx, engine.NavigationFinished{ContentID: player.CurrentContentID(gctx)}); err != nil {
			return nil
		}
		err := player.Watch(gctx, ctrl.Post)
		switch {
		case errors.Is(err, mpv.ErrClosed):
			lgr.Printf("[INFO] mpv connection closed, stopping")
			cancel()
			return nil
		case gctx.Err() != nil:
			return nil
		default:
			return fmt.Errorf("mpv watch: %w", err)
		}
	})

	return g.Wait()
}

// acquireLock makes sure only one instance drives a given mpv socket
func acquireLock(socket string) (*flock.Flock, error) {
	lock := flock.New(socket + ".speednorm.lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("another instance already controls %s", socket)
	}
	return lock, nil
}

// loadConfig reads the config file if given and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.Socket != "" {
		cfg.Player.Socket = opts.Socket
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	return cfg, nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
