package parser

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDiversionZeroStreamsImmediately(t *testing.T) {
	var buf strings.Builder
	d := newDiversions(&buf)

	assert.NoError(t, d.Write("a"))
	assert.Equal(t, "a", buf.String())
	assert.NoError(t, d.Flush())
	assert.Equal(t, "a", buf.String())
}

func TestDiversionBuffersUntilFlush(t *testing.T) {
	var buf strings.Builder
	d := newDiversions(&buf)

	d.Divert(2)
	assert.NoError(t, d.Write("second"))
	d.Divert(1)
	assert.NoError(t, d.Write("first"))
	d.Divert(0)
	assert.NoError(t, d.Write("now"))
	assert.Equal(t, "now", buf.String())

	assert.NoError(t, d.Flush())
	assert.Equal(t, "nowfirstsecond", buf.String())
}

func TestDiversionNegativeDiscards(t *testing.T) {
	var buf strings.Builder
	d := newDiversions(&buf)

	d.Divert(-1)
	assert.NoError(t, d.Write("gone"))
	d.Divert(0)
	assert.NoError(t, d.Flush())
	assert.Equal(t, "", buf.String())
}

func TestDiversionCurrent(t *testing.T) {
	var buf strings.Builder
	d := newDiversions(&buf)

	assert.Equal(t, 0, d.Current())
	d.Divert(5)
	assert.Equal(t, 5, d.Current())
	d.Divert(-3)
	assert.Equal(t, -3, d.Current())
}

func TestDiversionWriteAppendsOnReturn(t *testing.T) {
	var buf strings.Builder
	d := newDiversions(&buf)

	d.Divert(1)
	assert.NoError(t, d.Write("a"))
	d.Divert(0)
	d.Divert(1)
	assert.NoError(t, d.Write("b"))
	assert.NoError(t, d.Flush())
	assert.Equal(t, "ab", buf.String())
}
