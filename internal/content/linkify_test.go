package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain http url",
			input: "Veja https://abcip.org.br/noticias agora",
			want:  `Veja <a href="https://abcip.org.br/noticias" target="_blank" rel="noopener noreferrer">https://abcip.org.br/noticias</a> agora`,
		},
		{
			name:  "trailing punctuation stays outside",
			input: "<p>Acesse https://gov.br/aneel.</p>",
			want:  `<p>Acesse <a href="https://gov.br/aneel" target="_blank" rel="noopener noreferrer">https://gov.br/aneel</a>.</p>`,
		},
		{
			name:  "www gets https href",
			input: "(www.abcip.org.br)",
			want:  `(<a href="https://www.abcip.org.br" target="_blank" rel="noopener noreferrer">www.abcip.org.br</a>)`,
		},
		{
			name:  "existing anchor untouched",
			input: `<a href="https://a.com">https://a.com</a>`,
			want:  `<a href="https://a.com">https://a.com</a>`,
		},
		{
			name:  "nested markup inside anchor untouched",
			input: `<a href="https://a.com"><strong>https://a.com</strong></a> e https://b.com`,
			want:  `<a href="https://a.com"><strong>https://a.com</strong></a> e <a href="https://b.com" target="_blank" rel="noopener noreferrer">https://b.com</a>`,
		},
		{
			name:  "attribute urls untouched",
			input: `<img src="https://cdn.com/x.png">`,
			want:  `<img src="https://cdn.com/x.png">`,
		},
		{
			name:  "script body untouched",
			input: `<script>var u = "https://a.com";</script>`,
			want:  `<script>var u = "https://a.com";</script>`,
		},
		{
			name:  "query string entities preserved",
			input: "https://a.com/?x=1&amp;y=2",
			want:  `<a href="https://a.com/?x=1&amp;y=2" target="_blank" rel="noopener noreferrer">https://a.com/?x=1&amp;y=2</a>`,
		},
		{
			name:  "escaped quote ends the url",
			input: "&quot;https://a.com&quot; e https://b.com&gt;",
			want:  `&quot;<a href="https://a.com" target="_blank" rel="noopener noreferrer">https://a.com</a>&quot; e <a href="https://b.com" target="_blank" rel="noopener noreferrer">https://b.com</a>&gt;`,
		},
		{
			name:  "textarea body untouched",
			input: "<textarea>https://a.com</textarea> https://b.com",
			want:  `<textarea>https://a.com</textarea> <a href="https://b.com" target="_blank" rel="noopener noreferrer">https://b.com</a>`,
		},
		{
			name:  "bare prefix is not a link",
			input: "o site www. e http:// sozinhos",
			want:  "o site www. e http:// sozinhos",
		},
		{
			name:  "no urls",
			input: "<p>Sem links aqui.</p>",
			want:  "<p>Sem links aqui.</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Linkify(tt.input))
		})
	}
}

func TestLinkify_Idempotent(t *testing.T) {
	inputs := []string{
		"Veja https://abcip.org.br e www.aneel.gov.br, por favor.",
		`<p>Link: <a href="https://a.com">aqui</a> e https://b.com/path?q=1</p>`,
		"<ul><li>https://x.com/a)</li><li>texto</li></ul>",
		"<noscript>Veja http://a.com</noscript>",
		"<textarea>http://a.com</textarea>",
		"<title>http://a.com</title>",
		`<iframe>http://a.com</iframe><p>http://b.com</p>`,
		"<noembed>www.a.com</noembed><noframes>www.b.com</noframes><xmp>https://c.com</xmp>",
		"Texto &quot;https://a.com&quot; citado",
	}
	for _, in := range inputs {
		once := Linkify(in)
		assert.Equal(t, once, Linkify(once), "input %q", in)
	}
}
