// Package app ties the session, player, and preview services into the
// user-facing picking flows.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vidpick/internal/contracts"
	"vidpick/internal/models"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
)

// ErrNothingToPick is returned when a pick is requested before any videos
// are known to the session.
var ErrNothingToPick = errors.New("no videos to pick from, scan a folder first")

// App drives a picking session against a player and the preview service.
type App struct {
	Session *session.Store
	Player  contracts.Launcher
	Preview contracts.Prober

	mu      sync.Mutex
	persist bool
}

// New wires an App. Preview may be nil, which disables media info lookups.
func New(sess *session.Store, launcher contracts.Launcher, prober contracts.Prober, persist bool) *App {
	return &App{
		Session: sess,
		Player:  launcher,
		Preview: prober,
		persist: persist,
	}
}

// PersistEnabled reports whether session changes are written back to disk.
func (a *App) PersistEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.persist
}

// TogglePersistence flips saving on or off and returns the new state.
// Enabling saves the current session immediately, disabling removes the
// saved snapshot so nothing stale is restored later.
func (a *App) TogglePersistence() bool {
	a.mu.Lock()
	a.persist = !a.persist
	on := a.persist
	a.mu.Unlock()

	state := "disabled"
	if on {
		a.Session.Save()
		state = "enabled"
	} else {
		a.Session.ClearSaved()
	}
	logging.I("Session persistence %s", state)
	return on
}

func (a *App) saveIfEnabled() {
	if a.PersistEnabled() {
		a.Session.Save()
	}
}

// PickOptions adjust a single PickAndPlay call.
type PickOptions struct {
	// Skip marks the pick as skipped instead of playing it, advancing the
	// rotation without recording a watch.
	Skip bool

	// NoPlay records the pick as played without launching the player.
	NoPlay bool

	// Info attaches media details to the result.
	Info bool
}

// PickResult describes what a PickAndPlay call did.
type PickResult struct {
	Path     string
	Progress models.Progress
	Skipped  bool
	Info     *models.MediaInfo
}

// PickAndPlay chooses a random unplayed video, launches it unless
// suppressed, and records the outcome. A failed player launch leaves the
// video unmarked so the same rotation can retry it.
func (a *App) PickAndPlay(ctx context.Context, opts PickOptions) (*PickResult, error) {
	path, ok := a.Session.Pick()
	if !ok {
		return nil, ErrNothingToPick
	}

	res := &PickResult{Path: path}

	if opts.Skip {
		res.Skipped = true
		res.Progress = a.Session.Skip(path)
		a.saveIfEnabled()
		return res, nil
	}

	if !opts.NoPlay {
		if err := a.Player.Play(ctx, path); err != nil {
			return nil, fmt.Errorf("failed to launch player for %q: %w", path, err)
		}
	}

	res.Progress = a.Session.MarkPlayed(path)
	a.saveIfEnabled()

	if opts.Info && a.Preview != nil {
		info := a.Preview.Probe(ctx, path)
		res.Info = &info
	}
	return res, nil
}

// Scan refreshes the session's video list from folder and persists the
// result.
func (a *App) Scan(ctx context.Context, folder string, opts session.ScanOptions) (int, error) {
	n, err := a.Session.Scan(ctx, folder, opts)
	if err != nil {
		return 0, err
	}
	a.saveIfEnabled()
	return n, nil
}

// Replay launches a previously played video again without touching session
// progress, the rewatch does not advance the rotation.
func (a *App) Replay(ctx context.Context, path string) error {
	if err := a.Player.Play(ctx, path); err != nil {
		return fmt.Errorf("failed to launch player for %q: %w", path, err)
	}
	logging.I("Replaying %s", path)
	return nil
}

// Reset starts the rotation over and persists the cleared state.
func (a *App) Reset() models.Progress {
	prog := a.Session.Reset()
	a.saveIfEnabled()
	return prog
}
