package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// watch URLs
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&feature=share", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  https://m.youtube.com/watch?v=dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},

		// short links
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},

		// embed and iframe
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{`<iframe src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"></iframe>`, "dQw4w9WgXcQ"},

		// shorts and legacy
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},

		// no match
		{"https://example.com", ""},
		{"https://vimeo.com/123456", ""},
		{"https://youtu.be/short", ""},
		{"https://notyoutube.com/watch?v=dQw4w9WgXcQ", ""},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQxyz", ""},
		{"https://youtu.be/dQw4w9WgXcQ1", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExtractYouTubeID(tt.input), "input %q", tt.input)
	}
}

func TestYouTubeThumbnail(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", YouTubeThumbnail("https://youtu.be/dQw4w9WgXcQ"))
	assert.Empty(t, YouTubeThumbnail("https://example.com/video"))
}

func TestYouTubeEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", YouTubeEmbedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Empty(t, YouTubeEmbedURL("not a url"))
}
