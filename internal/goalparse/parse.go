// Package goalparse extracts a best-effort deadline from free-form
// goal text. It is deliberately isolated: the scheduler only ever sees
// the absolute instant this package may or may not produce.
package goalparse

import (
	"regexp"
	"strings"
	"time"
)

var (
	datePattern    = regexp.MustCompile(`(?i)(?:by|until|before|deadline|due)?\s*(\d{1,2}/\d{1,2}(?:/\d{4})?)`)
	keywordPattern = regexp.MustCompile(`(?i)\b(?:by|until|before|deadline|due)\b`)
	tomorrowRe     = regexp.MustCompile(`(?i)tomorrow`)
)

// Parse splits goal text into the goal description and an optional
// deadline. Recognizes "tomorrow" and MM/DD or MM/DD/YYYY dates behind
// the usual deadline keywords; anything else means no deadline, never
// an error.
func Parse(text string, now time.Time) (string, *time.Time) {
	goalText := text
	var deadline *time.Time

	if tomorrowRe.MatchString(text) {
		d := now.AddDate(0, 0, 1)
		deadline = &d
		goalText = strings.TrimSpace(tomorrowRe.ReplaceAllString(goalText, ""))
	}

	if match := datePattern.FindStringSubmatch(goalText); match != nil {
		if parsed, ok := parseSlashDate(match[1], now); ok {
			deadline = &parsed
			goalText = strings.TrimSpace(datePattern.ReplaceAllString(goalText, ""))
		}
	}

	goalText = strings.TrimSpace(keywordPattern.ReplaceAllString(goalText, ""))
	goalText = strings.TrimSpace(strings.TrimSuffix(goalText, ","))
	goalText = strings.Join(strings.Fields(goalText), " ")

	return goalText, deadline
}

func parseSlashDate(value string, now time.Time) (time.Time, bool) {
	for _, layout := range []string{"1/2/2006", "1/2"} {
		parsed, err := time.ParseInLocation(layout, value, now.Location())
		if err != nil {
			continue
		}
		if layout == "1/2" {
			parsed = parsed.AddDate(now.Year(), 0, 0)
		}
		return parsed, true
	}
	return time.Time{}, false
}
