package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/glabrego/lobsters-cli/internal/app"
	"github.com/glabrego/lobsters-cli/internal/config"
	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/logging"
	"github.com/glabrego/lobsters-cli/internal/storage"
	"github.com/glabrego/lobsters-cli/internal/tui"
	"github.com/glabrego/lobsters-cli/internal/tui/platform"
	"github.com/glabrego/lobsters-cli/internal/tui/view"
)

const (
	exitOK     = 0
	exitForced = 1
	exitFatal  = 2

	storageTimeout = 15 * time.Second
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return exitFatal
	}
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "lobsters %s\n", version)
		return exitOK
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "logging error: %v\n", err)
		return exitFatal
	}
	defer logCloser.Close()

	repo, err := storage.NewRepository(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(stderr, "storage init error: %v\n", err)
		return exitFatal
	}
	defer repo.Close()

	initCtx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		fmt.Fprintf(stderr, "storage schema error: %v. Verify the database path is writable: %s\n", err, cfg.DatabasePath)
		return exitFatal
	}

	if cfg.ShowStats {
		n, err := repo.CountRead(initCtx)
		if err != nil {
			fmt.Fprintf(stderr, "stats error: %v\n", err)
			return exitFatal
		}
		schema, err := repo.SchemaVersion(initCtx)
		if err != nil {
			fmt.Fprintf(stderr, "stats error: %v\n", err)
			return exitFatal
		}
		fmt.Fprintf(stdout, "%s posts marked read in %s (schema v%d)\n", humanize.Comma(int64(n)), cfg.DatabasePath, schema)
		return exitOK
	}

	if !isTerminal(os.Stdout) {
		fmt.Fprintln(stderr, "lobsters needs an interactive terminal")
		return exitForced
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "version", version, "mode", cfg.Mode, "config", cfg.ConfigPath, "database", cfg.DatabasePath)

	flags := app.NewFlags()
	client := lobsters.NewClient(cfg.BaseURL, flags.Downloaded,
		lobsters.WithTimeout(cfg.RequestTimeout),
		lobsters.WithRateLimit(cfg.RequestsPerSecond),
		lobsters.WithUserAgent("lobsters-cli/"+version),
	)
	term := tui.New(tui.Options{UI: uiOptions(cfg.UI), Logger: logger})
	core := app.New(app.Options{
		Mode:                        cfg.Mode,
		OpeningCommentsMarksRead:    cfg.OpeningCommentsMarksRead,
		PreviewingCommentsMarksRead: cfg.PreviewingCommentsMarksRead,
	}, flags, app.Dependencies{
		Backend:  app.NewService(client, repo),
		Terminal: term,
		Opener:   platform.NewOpener(logger),
		Logger:   logger,
	})

	term.Start()
	code, runErr := runCore(ctx, core, term)
	if err := term.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("terminal: %w", err)
	}
	if runErr != nil {
		logger.Error("fatal", "err", runErr)
		fmt.Fprintf(stderr, "error: %v\n", runErr)
		return exitFatal
	}
	if ctx.Err() != nil && code == exitOK {
		code = exitForced
	}
	logger.Info("stopped", "code", code, "downloaded", humanize.Bytes(flags.Downloaded.Load()))
	return code
}

// runCore restores the terminal before re-raising a panic from the core.
func runCore(ctx context.Context, core *app.App, term *tui.Terminal) (int, error) {
	defer func() {
		if r := recover(); r != nil {
			term.Kill()
			panic(r)
		}
	}()
	return core.Run(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func uiOptions(ui config.UI) view.UIOptions {
	return view.UIOptions{
		Shortcuts:        ui.Shortcuts.Enable,
		Downloaded:       ui.Downloaded.Enable,
		KeybindHints:     ui.KeybindHints.Enable,
		ModeInfo:         ui.ModeInfo.Enable,
		ScoreCount:       ui.ScoreCount.Enable,
		CommentCount:     ui.CommentCount.Enable,
		SubmittedUser:    ui.SubmittedUser.Enable,
		SubmittedElapsed: ui.SubmittedElapsed.Enable,
		Scrollbar:        ui.Scrollbar.Enable,
		Header:           ui.Header.Enable,
	}
}
