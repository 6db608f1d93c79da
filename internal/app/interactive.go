package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"vidpick/internal/models"
	"vidpick/internal/preview"
	"vidpick/internal/session"
	"vidpick/internal/utils/logging"
)

// infoResult carries an async probe back to the interactive loop. The id
// ties it to the request that started it, results from superseded requests
// are dropped.
type infoResult struct {
	id   uuid.UUID
	path string
	info models.MediaInfo
}

type interactive struct {
	app *App
	out io.Writer

	lastPick    string
	pendingInfo uuid.UUID
	infoCh      chan infoResult
}

// Interactive runs the line-driven session loop until the user quits, input
// ends, or ctx is canceled.
func (a *App) Interactive(ctx context.Context, in io.Reader, out io.Writer) error {
	it := &interactive{
		app:    a,
		out:    out,
		infoCh: make(chan infoResult, 4),
	}

	lines := make(chan string)
	go readLines(in, lines)

	it.showHelp()
	it.showProgress()

	for {
		fmt.Fprint(out, "> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil

		case res := <-it.infoCh:
			it.showInfoResult(res)

		case line, open := <-lines:
			if !open {
				fmt.Fprintln(out)
				return nil
			}
			if quit := it.handle(ctx, line); quit {
				return nil
			}
			it.drainEvents()
		}
	}
}

// readLines feeds trimmed input lines to the loop, closing the channel at
// EOF. The goroutine blocks on the final read when the loop exits first,
// which is fine for a process on its way out.
func readLines(in io.Reader, lines chan<- string) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		lines <- strings.TrimSpace(sc.Text())
	}
	close(lines)
}

// handle runs one command. The return reports whether the loop should quit.
func (it *interactive) handle(ctx context.Context, line string) bool {
	name, arg := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		name, arg = line[:i], strings.TrimSpace(line[i+1:])
	}

	switch strings.ToLower(name) {
	case "", "p", "play":
		it.pick(ctx, PickOptions{})

	case "s", "skip":
		it.pick(ctx, PickOptions{Skip: true})

	case "o", "open":
		it.open(ctx, arg)

	case "i", "info":
		it.requestInfo(ctx)

	case "r", "recent":
		it.showRecent()

	case "g", "progress":
		it.showProgress()

	case "x", "reset":
		it.app.Reset()

	case "t", "persist":
		if it.app.TogglePersistence() {
			fmt.Fprintln(it.out, "Session saving enabled.")
		} else {
			fmt.Fprintln(it.out, "Session saving disabled, snapshot removed.")
		}

	case "h", "?", "help":
		it.showHelp()

	case "q", "quit", "exit":
		fmt.Fprintln(it.out, "Bye.")
		return true

	default:
		fmt.Fprintf(it.out, "Unknown command %q, 'h' lists commands.\n", line)
	}
	return false
}

// open scans a new folder, starting a fresh rotation.
func (it *interactive) open(ctx context.Context, folder string) {
	if folder == "" {
		fmt.Fprintln(it.out, "Usage: o <folder>")
		return
	}

	n, err := it.app.Scan(ctx, folder, session.ScanOptions{})
	if err != nil {
		fmt.Fprintf(it.out, "Error: %v\n", err)
		return
	}

	it.lastPick = ""
	it.pendingInfo = uuid.Nil
	fmt.Fprintf(it.out, "Found %d videos.\n", n)
}

func (it *interactive) pick(ctx context.Context, opts PickOptions) {
	res, err := it.app.PickAndPlay(ctx, opts)
	if err != nil {
		fmt.Fprintf(it.out, "Error: %v\n", err)
		return
	}

	it.lastPick = res.Path
	it.pendingInfo = uuid.Nil // a new pick outdates any probe in flight

	// A rotation reset belongs on screen before the pick it enabled.
	it.drainEvents()

	verb := "Now playing"
	if res.Skipped {
		verb = "Skipped"
	}
	fmt.Fprintf(it.out, "%s: %s (%d of %d played)\n",
		verb, filepath.Base(res.Path), res.Progress.Played, res.Progress.Total)
}

// requestInfo probes the last pick in the background so a slow ffprobe
// never stalls the loop. Each request gets a fresh id, only the newest
// request's result is shown.
func (it *interactive) requestInfo(ctx context.Context) {
	if it.lastPick == "" {
		fmt.Fprintln(it.out, "Nothing picked yet.")
		return
	}
	if it.app.Preview == nil {
		fmt.Fprintln(it.out, "Media info is not available.")
		return
	}

	id := uuid.New()
	it.pendingInfo = id
	path := it.lastPick

	go func() {
		info := it.app.Preview.Probe(ctx, path)
		select {
		case it.infoCh <- infoResult{id: id, path: path, info: info}:
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(it.out, "Probing %s ...\n", filepath.Base(path))
}

func (it *interactive) showInfoResult(res infoResult) {
	if res.id != it.pendingInfo {
		logging.D(1, "dropping stale media info for %s", res.path)
		return
	}
	it.pendingInfo = uuid.Nil

	fmt.Fprintf(it.out, "\n%s\n", filepath.Base(res.path))
	fmt.Fprintf(it.out, "  Size:       %s\n", preview.FormatFileSize(res.info.Size))
	fmt.Fprintf(it.out, "  Duration:   %s\n", preview.FormatDuration(res.info.Duration))
	fmt.Fprintf(it.out, "  Resolution: %s\n", preview.FormatResolution(res.info.Width, res.info.Height))
	if res.info.VideoCodec != "" {
		fmt.Fprintf(it.out, "  Codec:      %s\n", res.info.VideoCodec)
	}
	fmt.Fprintf(it.out, "  Modified:   %s\n", preview.FormatTimestamp(res.info.ModTime))
}

func (it *interactive) showRecent() {
	recent := it.app.Session.Recent(0)
	if len(recent) == 0 {
		fmt.Fprintln(it.out, "Nothing played yet.")
		return
	}

	fmt.Fprintln(it.out, "Recently played, newest first:")
	for n, p := range recent {
		fmt.Fprintf(it.out, "  %2d. %s\n", n+1, filepath.Base(p))
	}
}

func (it *interactive) showProgress() {
	prog := it.app.Session.Progress()
	if prog.Total == 0 {
		fmt.Fprintln(it.out, "No videos scanned yet.")
		return
	}
	fmt.Fprintf(it.out, "Played %d of %d (%.0f%%).\n",
		prog.Played, prog.Total, float64(prog.Played)/float64(prog.Total)*100)
}

func (it *interactive) showHelp() {
	fmt.Fprint(it.out, `Commands:
  enter/p  pick and play a random video
  s        pick and skip (advances the rotation without playing)
  o <dir>  scan a folder, starting a fresh rotation
  i        media info for the last pick
  r        recently played
  g        progress
  x        reset the rotation
  t        toggle session saving
  q        quit
`)
}

// drainEvents surfaces notable session events after each command without
// ever blocking on the feed.
func (it *interactive) drainEvents() {
	for {
		select {
		case ev := <-it.app.Session.Events():
			switch ev.Kind {
			case models.EventRotationReset:
				fmt.Fprintln(it.out, "Rotation reset, every video is back in the pool.")
			case models.EventStateSaveFailed:
				fmt.Fprintf(it.out, "Warning: session not saved: %v\n", ev.Err)
			}
		default:
			return
		}
	}
}
