// Package web embeds the HTML templates and static assets of the site.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/cast"

	"abcip/internal/content"
)

//go:embed views static
var files embed.FS

// Static returns the assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewEngine loads the embedded views with the template helpers. Dates are
// rendered in loc.
func NewEngine(loc *time.Location) *html.Engine {
	views, err := fs.Sub(files, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.AddFuncMap(Funcs(loc))
	return engine
}

// Funcs are the helpers available to every template.
func Funcs(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.UTC
	}
	format := func(layout string) func(any) string {
		return func(v any) string {
			var t time.Time
			switch x := v.(type) {
			case time.Time:
				t = x
			case *time.Time:
				if x == nil {
					return ""
				}
				t = *x
			default:
				return ""
			}
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format(layout)
		}
	}

	return template.FuncMap{
		"date":          format("02/01/2006"),
		"datetime":      format("02/01/2006 15:04"),
		"datetimeLocal": format("2006-01-02T15:04"),
		// number groups thousands the Brazilian way: 12.345
		"number": func(v any) string {
			return humanize.FormatInteger("#.###,", cast.ToInt(v))
		},
		"readingTime":  content.ReadingTime,
		"excerpt":      func(s string, n any) string { return content.Excerpt(s, cast.ToInt(n)) },
		"youtubeEmbed": content.YouTubeEmbedURL,
		"safeHTML":     func(s string) template.HTML { return template.HTML(s) },
		"add":          func(a, b any) int { return cast.ToInt(a) + cast.ToInt(b) },
		// row feeds the shared admin row actions partial.
		"row": func(base, id string) map[string]string {
			return map[string]string{"Base": base, "ID": id}
		},
		"pages": func(n any) []int {
			total := cast.ToInt(n)
			out := make([]int, 0, total)
			for i := 1; i <= total; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}
