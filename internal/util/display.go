// Package util contains small display helpers shared by the CLI and the
// examples. This lives in internal to avoid committing to public API
// stability prematurely.
package util

import (
	"fmt"
	"strings"
)

// Truncate shortens s to at most max runes, appending "..." when text was cut.
// Non-positive max returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Percent renders a 0..1 rate as a percentage with one decimal, e.g. "83.3%".
func Percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// Seconds renders a duration measured in seconds, e.g. "12.5s". Zero means
// unmeasured and renders as "-".
func Seconds(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", v)
}

// SuccessMarker renders a boolean outcome as a fixed-width table cell.
func SuccessMarker(success bool) string {
	if success {
		return "OK"
	}
	return "FAIL"
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
