// Package domain validates and canonicalizes user-entered website addresses.
package domain

// Result is the outcome of validating a raw website address. Invalid input
// is reported as data, never as an error value or a panic, so callers can
// show the reason and re-prompt.
type Result struct {
	Valid    bool
	Hostname string   // canonical lower-cased hostname, set only when valid
	Err      string   // human-readable reason, set only when invalid
	Warnings []string // non-fatal notes, may accompany a valid result
}

func invalid(reason string) Result {
	return Result{Err: reason}
}
