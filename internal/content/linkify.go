package content

import (
	"html"
	"io"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

var (
	urlPattern    = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`)
	prefixPattern = regexp.MustCompile(`(?i)^(?:https?://|www\.)`)
	// escaped quotes and brackets end a URL just like their literal forms
	stopEntity = regexp.MustCompile(`(?i)&(?:quot|apos|lt|gt|#0*3[49]|#x0*2[27]|#0*6[02]|#x0*3[ce]);?`)
)

// rawTextTags are the elements whose body the tokenizer returns as one text
// token, markup included.
var rawTextTags = map[string]bool{
	"script": true, "style": true, "textarea": true, "title": true,
	"iframe": true, "noscript": true, "noembed": true, "noframes": true,
	"xmp": true, "plaintext": true,
}

// trailing punctuation is usually sentence punctuation, not part of the URL
const trailingPunct = ".,;:!?)]}'\""

// Linkify wraps bare URLs found in the text of an HTML fragment in anchors
// that open in a new tab. Text already inside <a> or a raw text element
// (script, style, textarea, title...) is left alone and attributes are never touched, so Linkify(Linkify(s)) == Linkify(s).
func Linkify(fragment string) string {
	z := nethtml.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	b.Grow(len(fragment))
	anchorDepth, rawDepth := 0, 0

	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			if z.Err() != io.EOF {
				// malformed tail: keep whatever the tokenizer could not consume
				b.Write(z.Raw())
			}
			return b.String()
		}

		// TagName rewrites the token buffer in place, so keep an exact copy first
		raw := append([]byte(nil), z.Raw()...)
		switch tt {
		case nethtml.StartTagToken:
			switch name := tagName(z); {
			case name == "a":
				anchorDepth++
			case rawTextTags[name]:
				rawDepth++
			}
		case nethtml.EndTagToken:
			switch name := tagName(z); {
			case name == "a":
				if anchorDepth > 0 {
					anchorDepth--
				}
			case rawTextTags[name]:
				if rawDepth > 0 {
					rawDepth--
				}
			}
		case nethtml.TextToken:
			if anchorDepth == 0 && rawDepth == 0 {
				b.WriteString(linkifyText(string(raw)))
				continue
			}
		}
		b.Write(raw)
	}
}

func tagName(z *nethtml.Tokenizer) string {
	name, _ := z.TagName()
	return strings.ToLower(string(name))
}

func linkifyText(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		url := match
		if loc := stopEntity.FindStringIndex(url); loc != nil {
			url = url[:loc[0]]
		}
		url = strings.TrimRight(url, trailingPunct)
		rest := match[len(url):]
		if p := prefixPattern.FindString(url); p == "" || len(p) == len(url) {
			return match
		}
		return anchor(url) + rest
	})
}

func anchor(text string) string {
	href := text
	if strings.HasPrefix(strings.ToLower(href), "www.") {
		href = "https://" + href
	}
	return `<a href="` + html.EscapeString(html.UnescapeString(href)) +
		`" target="_blank" rel="noopener noreferrer">` + text + `</a>`
}
