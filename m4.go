// Package m4 implements an m4-style text macro processor: it scans
// raw text, recognizes quoted literals, comments, and macro
// invocations, and produces expanded output, with support for
// recursive macro definition, runtime-reconfigurable quoting,
// conditional expansion, and deferred output diversions.
package m4

import (
	"context"
	"io"
	"strings"

	"github.com/robinvdvleuten/m4/parser"
)

// Expand runs the macro processor over source and returns the
// expanded output.
func Expand(source string) (string, error) {
	var buf strings.Builder
	if err := ExpandTo(context.Background(), &buf, source, ""); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExpandTo runs the macro processor over source, writing expanded
// output to w as it is produced. The filename is used for error
// reporting only.
func ExpandTo(ctx context.Context, w io.Writer, source, filename string) error {
	return parser.New(source, filename).Run(ctx, w)
}
