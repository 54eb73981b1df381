package m4

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "nothing to do here\n",
			want:  "nothing to do here\n",
		},
		{
			name:  "macro definition and use",
			input: "define(greet,`hello $1')greet(world)",
			want:  "hello world",
		},
		{
			name:  "conditional on definedness",
			input: "ifdef(nosuch,yes,no)",
			want:  "no",
		},
		{
			name:  "diversion reordering",
			input: "divert(1)`tail'divert(0)`head'",
			want:  "headtail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandError(t *testing.T) {
	_, err := Expand("`unterminated")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")
}

func TestExpandTo(t *testing.T) {
	var buf strings.Builder
	err := ExpandTo(context.Background(), &buf, "define(a,b)a", "input.m4")
	assert.NoError(t, err)
	assert.Equal(t, "b", buf.String())
}

func TestExpandToReportsFilename(t *testing.T) {
	var buf strings.Builder
	err := ExpandTo(context.Background(), &buf, "`oops", "input.m4")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "input.m4")
}
