package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/m4/parser"
)

func TestExpandCmd(t *testing.T) {
	t.Run("BasicExpansion", func(t *testing.T) {
		source := "define(greet, `hello $1')greet(world)\n"

		var buf bytes.Buffer
		p := parser.New(source, "test.m4")
		err := p.Run(context.Background(), &buf)
		assert.NoError(t, err)

		assert.Equal(t, "hello world\n", buf.String())
	})

	t.Run("ErrorKeepsPartialOutput", func(t *testing.T) {
		source := "written so far `never closed"

		var buf bytes.Buffer
		p := parser.New(source, "test.m4")
		err := p.Run(context.Background(), &buf)
		assert.Error(t, err)

		// Diversion-0 output streams before the failure is hit.
		assert.Equal(t, "written so far ", buf.String())
	})

	t.Run("EmptyInput", func(t *testing.T) {
		var buf bytes.Buffer
		p := parser.New("", "test.m4")
		err := p.Run(context.Background(), &buf)
		assert.NoError(t, err)
		assert.Equal(t, "", buf.String())
	})
}

func TestFileOrStdin(t *testing.T) {
	t.Run("ReadsFileContent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.m4")
		assert.NoError(t, os.WriteFile(path, []byte("define(a,b)a"), 0o644))

		f := FileOrStdin{Filename: path}
		content, err := f.GetSourceContent()
		assert.NoError(t, err)
		assert.Equal(t, "define(a,b)a", string(content))
	})

	t.Run("MissingFileErrors", func(t *testing.T) {
		f := FileOrStdin{Filename: filepath.Join(t.TempDir(), "missing.m4")}
		_, err := f.GetSourceContent()
		assert.Error(t, err)
	})

	t.Run("StdinUsesBufferedContents", func(t *testing.T) {
		f := FileOrStdin{Filename: "<stdin>", Contents: []byte("buffered")}
		content, err := f.GetSourceContent()
		assert.NoError(t, err)
		assert.Equal(t, "buffered", string(content))

		assert.Equal(t, "<stdin>", f.GetAbsoluteFilename())
	})

	t.Run("AbsoluteFilename", func(t *testing.T) {
		f := FileOrStdin{Filename: "input.m4"}
		abs := f.GetAbsoluteFilename()
		assert.True(t, filepath.IsAbs(abs))
	})
}
