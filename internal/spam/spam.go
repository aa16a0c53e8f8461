// Package spam holds the independent heuristics used to reject automated or
// abusive submissions.
package spam

import (
	"regexp"
	"strings"
	"time"
)

// MinFillTime is the shortest time a human plausibly needs to fill a form.
const MinFillTime = 3 * time.Second

var linkPattern = regexp.MustCompile(`(?i)(https?://|www\.)`)

// CountLinks returns the number of http(s):// or www. links in text.
func CountLinks(text string) int {
	return len(linkPattern.FindAllStringIndex(text, -1))
}

// TooManyLinks reports whether text holds more than limit links.
func TooManyLinks(text string, limit int) bool {
	return CountLinks(text) > limit
}

// RepeatedChars reports whether any character occurs run or more times in a row.
func RepeatedChars(text string, run int) bool {
	if run <= 1 {
		return text != ""
	}

	var (
		prev  rune
		count int
	)

	for _, r := range text {
		if r == prev {
			count++
		} else {
			prev, count = r, 1
		}

		if count >= run {
			return true
		}
	}

	return false
}

// HoneypotFilled reports whether the hidden honeypot field carries a value.
func HoneypotFilled(value string) bool {
	return strings.TrimSpace(value) != ""
}

// FilledTooFast reports whether a form opened at startedAtMillis (unix ms)
// was submitted in under minimum. A missing or future timestamp counts as too fast.
func FilledTooFast(startedAtMillis int64, now time.Time, minimum time.Duration) bool {
	if startedAtMillis <= 0 {
		return true
	}

	started := time.UnixMilli(startedAtMillis)
	if started.After(now) {
		return true
	}

	return now.Sub(started) < minimum
}
