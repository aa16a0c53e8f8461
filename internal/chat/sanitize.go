package chat

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Output limits, in characters.
const (
	MinResponseLength     = 20
	MaxResponseLength     = 800
	MaxCodeResponseLength = 1200
)

const fence = "```"

var (
	fencedBlock = regexp.MustCompile("(?s)```.*?```")
	placeholder = regexp.MustCompile(`\x00(\d+)\x00`)

	// linePrefix eats every stacked list, quote and heading marker at once.
	linePrefix = regexp.MustCompile(`(?m)^[ \t]*(?:(?:[-*+]|\d+[.)])[ \t]+|>[ \t]*|#{1,6}(?:[ \t]+|$))+`)

	// Emphasis markers must touch a word inside and a non-word or line edge
	// outside, so "2 * 3 * 4" survives.
	boldItalic = regexp.MustCompile(`(?m)(^|[^\w*])\*\*\*([^\s*](?:[^\n]*?[^\s*])?)\*\*\*($|[^\w*])`)
	boldStars  = regexp.MustCompile(`(?m)(^|[^\w*])\*\*([^\s*](?:[^\n]*?[^\s*])?)\*\*($|[^\w*])`)
	italicStar = regexp.MustCompile(`(?m)(^|[^\w*])\*([^\s*](?:[^*\n]*?[^\s*])?)\*($|[^\w*])`)

	// Underscore emphasis needs inner whitespace so identifiers like
	// __init__ are left alone.
	boldUnder = regexp.MustCompile(`(?m)(^|[^\w_])__([^\s_][^\n_]*?[ \t][^\n_]*?[^\s_])__($|[^\w_])`)

	spaces     = regexp.MustCompile(`[ \t]+`)
	trailing   = regexp.MustCompile(`(?m)[ \t]+$`)
	leading    = regexp.MustCompile(`(?m)^[ \t]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// Sanitize turns a completion into plain text. Fenced code blocks are kept
// verbatim; markdown markers are removed from the rest. Passes repeat until
// the text is stable, which keeps Sanitize idempotent.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")

	for {
		next := sanitizeOnce(text)
		if next == text {
			return text
		}

		text = next
	}
}

func sanitizeOnce(text string) string {
	var blocks []string

	text = fencedBlock.ReplaceAllStringFunc(text, func(block string) string {
		blocks = append(blocks, block)

		return fmt.Sprintf("\x00%d\x00", len(blocks)-1)
	})

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")

	text = linePrefix.ReplaceAllString(text, "")

	text = boldItalic.ReplaceAllString(text, "${1}${2}${3}")
	text = boldStars.ReplaceAllString(text, "${1}${2}${3}")
	text = boldUnder.ReplaceAllString(text, "${1}${2}${3}")
	text = italicStar.ReplaceAllString(text, "${1}${2}${3}")

	text = spaces.ReplaceAllString(text, " ")
	text = trailing.ReplaceAllString(text, "")
	text = leading.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		var idx int
		if _, err := fmt.Sscanf(strings.Trim(m, "\x00"), "%d", &idx); err != nil || idx >= len(blocks) {
			return m
		}

		return blocks[idx]
	})
}

// ValidateOutput enforces the length bounds of a sanitized completion.
// Long replies are cut at the last sentence end within the limit, or hard cut
// with an ellipsis.
func ValidateOutput(text string) (string, error) {
	text = strings.TrimSpace(text)

	n := utf8.RuneCountInString(text)
	if n < MinResponseLength {
		return "", fmt.Errorf("%w: %d characters", ErrResponseTooShort, n)
	}

	limit := MaxResponseLength
	if strings.Contains(text, fence) {
		limit = MaxCodeResponseLength
	}

	if n <= limit {
		return text, nil
	}

	runes := []rune(text)

	cut := truncate(runes, limit)
	if strings.Count(cut, fence)%2 == 0 {
		return cut, nil
	}

	// The cut landed inside a code block: make room for a closing fence.
	cut = strings.TrimRight(truncate(runes, limit-len(closingFence)), " \t\n`")
	if strings.Count(cut, fence)%2 == 1 {
		cut += closingFence
	}

	return cut, nil
}

const closingFence = "\n" + fence

func truncate(runes []rune, limit int) string {
	if end := lastSentenceEnd(runes, limit); end >= limit/2 {
		return strings.TrimSpace(string(runes[:end+1]))
	}

	return strings.TrimRight(string(runes[:limit-3]), " \t\n") + "..."
}

// lastSentenceEnd is the index below limit of the last '.', '!' or '?'
// followed by whitespace or the end of s, -1 when there is none.
func lastSentenceEnd(s []rune, limit int) int {
	for i := min(limit, len(s)) - 1; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			if i == len(s)-1 || s[i+1] == ' ' || s[i+1] == '\n' {
				return i
			}
		}
	}

	return -1
}
