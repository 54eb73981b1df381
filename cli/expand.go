package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/m4/output"
	"github.com/robinvdvleuten/m4/parser"
	"github.com/robinvdvleuten/m4/telemetry"
)

type ExpandCmd struct {
	File   FileOrStdin `help:"Macro input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Write expanded output to a file instead of stdout." short:"o" type:"path"`
}

func (cmd *ExpandCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var out io.Writer = ctx.Stdout
	if cmd.Output != "" {
		if _, err := os.Stat(cmd.Output); err == nil && isTerminal() {
			overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Output))
			if err != nil {
				return err
			}
			if !overwrite {
				printInfof(ctx.Stdout, "left %s untouched", cmd.Output)
				return nil
			}
		}

		f, err := os.Create(cmd.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	timer := telemetry.StartTimer(runCtx, fmt.Sprintf("expand %s", filepath.Base(cmd.File.Filename)))
	p := parser.New(string(source), cmd.File.Filename)
	err = p.Run(runCtx, out)
	timer.End()

	if err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "expansion failed")
		return NewCommandError(1)
	}

	if cmd.Output != "" {
		printSuccess(ctx.Stderr, fmt.Sprintf("wrote %s", cmd.Output))
	}

	return nil
}
