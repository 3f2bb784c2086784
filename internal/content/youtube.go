package content

import (
	"regexp"
	"strings"
)

// Known YouTube URL shapes, tried in order. The host must start at a label
// boundary and the id must be exactly 11 characters.
var youTubePatterns = []*regexp.Regexp{
	youTubePattern(`youtube(?:-nocookie)?\.com/watch\?(?:[^#\s"']*&)?v=`),
	youTubePattern(`youtube(?:-nocookie)?\.com/embed/`),
	youTubePattern(`youtube\.com/shorts/`),
	youTubePattern(`youtube\.com/v/`),
	youTubePattern(`youtu\.be/`),
}

func youTubePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[/.])` + prefix + `([a-zA-Z0-9_-]{11})(?:[^a-zA-Z0-9_-]|$)`)
}

// ExtractYouTubeID returns the video id of a YouTube URL (or iframe snippet),
// or an empty string when the input matches no known shape.
func ExtractYouTubeID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	for _, re := range youTubePatterns {
		if m := re.FindStringSubmatch(input); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// YouTubeThumbnail returns the high quality thumbnail URL for a YouTube URL.
func YouTubeThumbnail(input string) string {
	id := ExtractYouTubeID(input)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

// YouTubeEmbedURL converts any supported YouTube URL into its embed form.
func YouTubeEmbedURL(input string) string {
	id := ExtractYouTubeID(input)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
