package chat

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/unilabvision/myuni/internal/i18n"
)

// MaxMessageLength is the longest accepted user message in characters.
const MaxMessageLength = 1000

var harmfulPatterns = []*regexp.Regexp{ //nolint:gochecknoglobals
	regexp.MustCompile(`(?i)\bhack(s|er|ers|ing|ed)?\b`),
	regexp.MustCompile(`(?i)\b(malware|ransomware|keylogger|trojan|botnet|ddos)\b`),
	regexp.MustCompile(`(?i)\b(phishing|credential\s+stuffing|steal\s+(passwords?|credentials))\b`),
	regexp.MustCompile(`(?i)\b(make|build)\s+(a\s+)?(bomb|explosives?|weapons?)\b`),
	regexp.MustCompile(`(?i)\b(kill|hurt)\s+(myself|yourself)\b|\bsuicide\b`),
	regexp.MustCompile(`(?i)(hackle|şifre\s+kır|zararlı\s+yazılım|oltalama|bomba\s+yap)`),
}

// ValidateMessage checks the raw message value of a chat request and returns
// the trimmed message.
func ValidateMessage(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Key: i18n.MessageRequired, Reason: "message must be a string"}
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Key: i18n.MessageRequired, Reason: "message is empty"}
	}

	if utf8.RuneCountInString(s) > MaxMessageLength {
		return "", &ValidationError{Key: i18n.MessageTooLong, Reason: "message too long"}
	}

	for _, re := range harmfulPatterns {
		if re.MatchString(s) {
			return "", &ValidationError{Key: i18n.MessageHarmful, Reason: "message matches a harmful pattern"}
		}
	}

	return s, nil
}
