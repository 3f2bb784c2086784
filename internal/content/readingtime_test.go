package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("palavra ", n))
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "empty body", body: "", want: 1},
		{name: "only tags", body: "<p></p><br/>", want: 1},
		{name: "one word", body: "<p>olá</p>", want: 1},
		{name: "exactly 200 words", body: "<p>" + words(200) + "</p>", want: 1},
		{name: "201 words rounds up", body: "<p>" + words(201) + "</p>", want: 2},
		{name: "tags between words are separators", body: "<b>um</b><i>dois</i>", want: 1},
		{name: "1000 words", body: "<div>" + words(1000) + "</div>", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadingTime(tt.body))
		})
	}
}

func TestReadingTime_MonotonicAndPositive(t *testing.T) {
	prev := 0
	for n := 0; n <= 1200; n += 37 {
		got := ReadingTime("<p>" + words(n) + "</p>")
		assert.GreaterOrEqual(t, got, 1)
		assert.GreaterOrEqual(t, got, prev, "word count %d", n)
		prev = got
	}
}
