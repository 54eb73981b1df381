package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/m4/parser"
)

// DoctorCmd provides doctor utilities for debugging macro input files.
type DoctorCmd struct {
	Lex LexCmd `cmd:"" help:"Show lexical tokens from a macro input file."`
}

// LexCmd shows the raw token stream of a macro input file, without
// performing any macro expansion.
type LexCmd struct {
	File FileOrStdin `help:"Macro input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Repr bool        `help:"Dump tokens as Go values."`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	lexer := parser.NewLexer(string(content), cmd.File.Filename)
	for {
		tok, err := lexer.Next()
		if err != nil {
			renderer := NewErrorRenderer(content)
			_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
			printError(ctx.Stderr, "lex error")
			return NewCommandError(1)
		}
		if tok.Type == parser.EOF {
			break
		}

		if cmd.Repr {
			repr.Println(tok)
			continue
		}

		// Format: TYPE line:col "content"
		_, _ = fmt.Fprintf(ctx.Stdout, "%-8s %d:%d    %q\n",
			tok.Type.String(),
			tok.Line,
			tok.Column,
			tok.Value)
	}

	return nil
}
