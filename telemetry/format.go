package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/m4/output"
)

// formatTimingTree outputs the timing tree in a hierarchical format.
// Example output:
//
//	expand input.m4: 12ms
//	├─ parser.expand: 11ms
//	└─ parser.flush: 0ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	duration := root.end.Sub(root.start)

	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(duration))

	for i, child := range root.children {
		isLast := i == len(root.children)-1
		formatNode(w, child, "", isLast, styles)
	}
}

// formatNode recursively formats a node and its children.
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	duration := node.end.Sub(node.start)
	slow := duration >= 100*time.Millisecond

	var branch, extension string
	if isLast {
		branch = "└─ "
		extension = "   "
	} else {
		branch = "├─ "
		extension = "│  "
	}

	if styles != nil {
		treeChars := styles.Dim(prefix + branch)
		timing := formatDuration(duration)
		if slow {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", treeChars, node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(duration))
	}

	childPrefix := prefix + extension
	for i, child := range node.children {
		childIsLast := i == len(node.children)-1
		formatNode(w, child, childPrefix, childIsLast, styles)
	}
}

// formatDuration shows milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
