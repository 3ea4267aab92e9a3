package utils

import (
	"regexp"
	"strings"
)

var templateEchoPattern = regexp.MustCompile(`(?i)Quick Summary – 2-3`)

// SanitizeAnswer normalizes assistant output before it is returned:
// every currency symbol becomes the literal "RM", and any line echoing
// the report template instructions is dropped.
func SanitizeAnswer(answer string) string {
	answer = strings.ReplaceAll(answer, "$", "RM")

	lines := strings.Split(answer, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if templateEchoPattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
