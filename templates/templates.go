// Package templates embeds the HTML pages and static assets served by the
// bookstore.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed html/*.html
var pages embed.FS

//go:embed static
var static embed.FS

// Load parses every page with the shared helper functions.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(pages, "html/*.html")
}

// Static returns the stylesheet and image directory rooted at "static".
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":    money,
		"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"coverSrc": coverSrc,
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// coverSrc resolves a stored cover to an image URL. Bare file names are
// served from the bundled image directory.
func coverSrc(cover string) string {
	if strings.HasPrefix(cover, "http://") || strings.HasPrefix(cover, "https://") || strings.HasPrefix(cover, "/") {
		return cover
	}
	return "/static/images/" + cover
}
