package content

import (
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ReadingTime estimates the minutes needed to read an HTML body.
// Tags are stripped, whitespace-delimited tokens counted, and the result is
// rounded up with a floor of one minute.
func ReadingTime(body string) int {
	words := len(strings.Fields(tagPattern.ReplaceAllString(body, " ")))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
