package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

type worker struct {
	name string
	run  func(context.Context) error
}

// Run starts the input, listing, detail and persistence workers and drives
// the core loop until the user quits, ctx is cancelled or a worker fails.
// Workers are joined before Run returns; a worker error takes priority over
// a core error.
func (a *App) Run(ctx context.Context) (int, error) {
	a.flags.Running.Store(true)

	// Workers finish their current request on shutdown instead of having it
	// cancelled under them.
	workerCtx := context.WithoutCancel(ctx)
	workers := []worker{
		{name: "input", run: a.inputWorker},
		{name: "listing", run: a.listingWorker},
		{name: "detail", run: a.detailWorker},
		{name: "persistence", run: a.persistenceWorker},
	}

	fatal := make(chan error, len(workers))
	var g errgroup.Group
	for _, w := range workers {
		g.Go(func() error {
			a.log.Debug("worker started", "worker", w.name)
			defer a.log.Debug("worker stopped", "worker", w.name)
			if err := w.run(workerCtx); err != nil {
				err = fmt.Errorf("%s worker: %w", w.name, err)
				a.log.Error("worker failed", "worker", w.name, "err", err)
				fatal <- err
				return err
			}
			return nil
		})
	}

	err := a.loop(ctx, fatal)
	a.flags.Running.Store(false)
	if werr := g.Wait(); werr != nil {
		return a.exitCode, werr
	}
	if err == nil {
		err = a.applyPending(workerCtx)
	}
	return a.exitCode, err
}

// applyPending writes the read/unread changes that were still waiting for
// room in the persistence queue when the workers stopped.
func (a *App) applyPending(ctx context.Context) error {
	for _, action := range a.actions.take() {
		if err := a.backend.Apply(ctx, action); err != nil {
			return fmt.Errorf("persistence worker: %w", err)
		}
	}
	return nil
}

// flush forwards queued requests to workers that have room for them.
func (a *App) flush() {
	a.listingReqs.flush()
	a.detailReqs.flush()
	a.actions.flush()
}

func (a *App) loop(ctx context.Context, fatal <-chan error) error {
	if err := a.draw(); err != nil {
		return err
	}
	if len(a.cache.Posts) == 0 {
		a.requestListing()
	}

	ticker := time.NewTicker(a.opts.PollInterval)
	defer ticker.Stop()

	for a.flags.Running.Load() {
		a.flush()
		select {
		case err := <-fatal:
			return err
		case <-ctx.Done():
			a.log.Info("shutting down", "reason", context.Cause(ctx))
			return nil
		case ev := <-a.events:
			a.handle(ev)
			if err := a.draw(); err != nil {
				return err
			}
		case <-ticker.C:
		}
	}
	return nil
}

func (a *App) draw() error {
	if err := a.term.Draw(a.Snapshot()); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}
