package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/m4/parser"
)

// WatchCmd watches a macro input file and re-expands it to the output
// file whenever it changes.
type WatchCmd struct {
	File   string `help:"Macro input filename." arg:"" type:"existingfile"`
	Output string `help:"Write expanded output to file." short:"o" required:"" type:"path"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmd.File); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}

	// Expand once up front so the output exists before the first change.
	cmd.expandOnce(ctx)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printInfof(ctx.Stdout, "watching %s", cmd.File)

	// Debounce timer - editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves).
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				// Atomic saves replace the inode; re-add the watch.
				_ = watcher.Add(cmd.File)
				cmd.expandOnce(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// expandOnce expands the input file to the output file, reporting
// failures without stopping the watch.
func (cmd *WatchCmd) expandOnce(ctx *kong.Context) {
	source, err := os.ReadFile(cmd.File)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("failed to read %s: %v", cmd.File, err))
		return
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("failed to create %s: %v", cmd.Output, err))
		return
	}
	defer func() { _ = f.Close() }()

	if err := parser.New(string(source), cmd.File).Run(context.Background(), f); err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "expansion failed")
		return
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("wrote %s", cmd.Output))
}
