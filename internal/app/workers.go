package app

import (
	"context"
	"fmt"
	"time"
)

// emit forwards ev to the core. It gives up once the core has stopped
// running so a worker never blocks shutdown on a full queue.
func (a *App) emit(ev Event) bool {
	select {
	case a.events <- ev:
		return true
	default:
	}
	ticker := time.NewTicker(a.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case a.events <- ev:
			return true
		case <-ticker.C:
			if !a.flags.Running.Load() {
				return false
			}
		}
	}
}

func (a *App) inputWorker(context.Context) error {
	for a.flags.Running.Load() {
		ev, ok, err := a.term.Poll(a.opts.PollInterval)
		if err != nil {
			return fmt.Errorf("read terminal input: %w", err)
		}
		if !ok {
			continue
		}
		if !a.emit(ev) {
			return nil
		}
	}
	return nil
}

func (a *App) listingWorker(ctx context.Context) error {
	logger := a.log.WithPrefix("listing")
	ticker := time.NewTicker(a.opts.PollInterval)
	defer ticker.Stop()

	for a.flags.Running.Load() {
		select {
		case m := <-a.listingReqs.ch:
			start := time.Now()
			before := a.flags.Downloaded.Load()
			posts, err := a.backend.Listing(ctx, m)
			if err != nil {
				return err
			}
			logger.Info("fetched listing", "mode", m, "page", m.Page, "posts", len(posts),
				"bytes", a.flags.Downloaded.Load()-before, "took", time.Since(start))
			if !a.emit(ListingLoaded{Mode: m, Posts: posts}) {
				return nil
			}
		case <-ticker.C:
		}
	}
	return nil
}

func (a *App) detailWorker(ctx context.Context) error {
	logger := a.log.WithPrefix("detail")
	ticker := time.NewTicker(a.opts.PollInterval)
	defer ticker.Stop()

	for a.flags.Running.Load() {
		select {
		case shortID := <-a.detailReqs.ch:
			start := time.Now()
			details, err := a.backend.Details(ctx, shortID)
			if err != nil {
				return err
			}
			logger.Info("fetched comments", "post", shortID, "comments", len(details.Comments), "took", time.Since(start))
			if !a.emit(DetailLoaded{Details: details}) {
				return nil
			}
		case <-ticker.C:
		}
	}
	return nil
}

// persistenceWorker applies read/unread changes in the order they were
// queued. Changes still queued at shutdown are flushed before it returns.
func (a *App) persistenceWorker(ctx context.Context) error {
	logger := a.log.WithPrefix("persist")
	ticker := time.NewTicker(a.opts.PollInterval)
	defer ticker.Stop()

	apply := func(action Action) error {
		if err := a.backend.Apply(ctx, action); err != nil {
			return err
		}
		logger.Debug("saved", "action", action.Kind, "post", action.ShortID)
		return nil
	}

	for a.flags.Running.Load() {
		select {
		case action := <-a.actions.ch:
			if err := apply(action); err != nil {
				return err
			}
		case <-ticker.C:
		}
	}
	for {
		select {
		case action := <-a.actions.ch:
			if err := apply(action); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
