package parser

import (
	"bytes"
	"io"

	"golang.org/x/exp/slices"
)

// diversions routes output to the destination or to numbered deferred
// buffers. Diversion 0 streams immediately; positive diversions are
// buffered and flushed in ascending numeric order at end of input;
// negative diversions accumulate but are discarded.
type diversions struct {
	current int
	bufs    map[int]*bytes.Buffer
	out     io.Writer
}

func newDiversions(out io.Writer) *diversions {
	return &diversions{out: out}
}

// Divert selects the current diversion.
func (d *diversions) Divert(n int) {
	d.current = n
}

// Current returns the current diversion number.
func (d *diversions) Current() int {
	return d.current
}

// Write routes text according to the current diversion. Buffers are
// created lazily on first write to a given diversion number.
func (d *diversions) Write(s string) error {
	if d.current == 0 {
		_, err := io.WriteString(d.out, s)
		return err
	}
	if d.bufs == nil {
		d.bufs = make(map[int]*bytes.Buffer)
	}
	buf, ok := d.bufs[d.current]
	if !ok {
		buf = &bytes.Buffer{}
		d.bufs[d.current] = buf
	}
	buf.WriteString(s)
	return nil
}

// Flush writes buffers for diversions >= 1 to the destination in
// ascending numeric order, then clears all buffers. Negative
// diversions are dropped here.
func (d *diversions) Flush() error {
	if len(d.bufs) == 0 {
		return nil
	}

	nums := make([]int, 0, len(d.bufs))
	for n := range d.bufs {
		if n >= 1 {
			nums = append(nums, n)
		}
	}
	slices.Sort(nums)

	for _, n := range nums {
		if _, err := d.bufs[n].WriteTo(d.out); err != nil {
			return err
		}
	}

	d.bufs = nil
	return nil
}
