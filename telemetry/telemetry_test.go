package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNoOpCollector(t *testing.T) {
	// NoOp collector should do nothing and have zero overhead
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.End()

	child := timer.Child("child")
	child.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	// Should produce no output
	if buf.Len() != 0 {
		t.Errorf("NoOp collector should produce no output, got: %s", buf.String())
	}
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	ctx := context.Background()
	collector := FromContext(ctx)

	// Should return NoOp collector, not nil
	if collector == nil {
		t.Fatal("FromContext should never return nil")
	}

	// Should be a NoOp collector
	if _, ok := collector.(noOpCollector); !ok {
		t.Errorf("FromContext should return noOpCollector when none present, got: %T", collector)
	}
}

func TestWithCollector(t *testing.T) {
	ctx := context.Background()
	collector := NewTimingCollector()

	ctx = WithCollector(ctx, collector)

	retrieved := FromContext(ctx)
	retrievedTiming, ok := retrieved.(*TimingCollector)
	if !ok || retrievedTiming != collector {
		t.Error("FromContext should return the same collector that was added")
	}
}

func TestStartTimerUsesContextCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	timer := StartTimer(ctx, "expand input.m4")
	time.Sleep(5 * time.Millisecond)
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	if !strings.Contains(buf.String(), "expand input.m4") {
		t.Errorf("Output should contain operation name, got: %s", buf.String())
	}
}

func TestTimingCollectorBasic(t *testing.T) {
	collector := NewTimingCollector()

	timer := collector.Start("Operation")
	time.Sleep(10 * time.Millisecond)
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	output := buf.String()

	// Should contain operation name
	if !strings.Contains(output, "Operation") {
		t.Errorf("Output should contain operation name, got: %s", output)
	}

	// Should contain duration
	if !strings.Contains(output, "ms") {
		t.Errorf("Output should contain duration, got: %s", output)
	}
}

func TestTimingCollectorHierarchical(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("Total")
	time.Sleep(5 * time.Millisecond)

	child := root.Child("Child")
	time.Sleep(5 * time.Millisecond)
	child.End()

	child2 := root.Child("Child 2")
	time.Sleep(5 * time.Millisecond)
	child2.End()

	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	output := buf.String()

	if !strings.Contains(output, "Total") {
		t.Errorf("Output should contain 'Total', got: %s", output)
	}
	if !strings.Contains(output, "Child") {
		t.Errorf("Output should contain 'Child', got: %s", output)
	}
	if !strings.Contains(output, "Child 2") {
		t.Errorf("Output should contain 'Child 2', got: %s", output)
	}

	// Should have tree structure (contains tree characters)
	if !strings.Contains(output, "├─") && !strings.Contains(output, "└─") {
		t.Errorf("Output should contain tree structure, got: %s", output)
	}
}

func TestTimingCollectorNestedStarts(t *testing.T) {
	collector := NewTimingCollector()

	// A Start while another timer is open nests under it.
	outer := collector.Start("parser.expand")
	inner := collector.Start("parser.flush")
	time.Sleep(5 * time.Millisecond)
	inner.End()
	outer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	output := buf.String()
	if !strings.Contains(output, "parser.expand") || !strings.Contains(output, "parser.flush") {
		t.Errorf("Output should contain both operations, got: %s", output)
	}
	if !strings.Contains(output, "└─ parser.flush") {
		t.Errorf("Inner operation should be nested, got: %s", output)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{1 * time.Millisecond, "1ms"},
		{10 * time.Millisecond, "10ms"},
		{100 * time.Millisecond, "100ms"},
		{999 * time.Millisecond, "999ms"},
		{1 * time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
		{2 * time.Second, "2.00s"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.duration)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	// Should produce no output when no timers have been started
	if buf.Len() != 0 {
		t.Errorf("Empty collector should produce no output, got: %s", buf.String())
	}
}
