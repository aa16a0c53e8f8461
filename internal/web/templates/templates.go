// Package templates embeds the page templates and builds the view engine.
package templates

import (
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/unilabvision/myuni/internal/i18n"
)

// Dir is the on-disk location of the templates, used in dev mode.
const Dir = "./internal/web/templates"

//go:embed layouts blog errors
var embedded embed.FS

// NewEngine returns the view engine. In dev mode templates are read from Dir
// and reloaded on every render.
func NewEngine(dev bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(embedded), ".gohtml")

	if dev {
		engine = html.New(Dir, ".gohtml")
		engine.ShouldReload = true
	}

	engine.AddFunc("t", func(lang i18n.Lang, key string) string {
		return i18n.T(lang, i18n.Key(key))
	})
	engine.AddFunc("date", func(lang i18n.Lang, t time.Time) string {
		if lang == i18n.EN {
			return t.Format("January 2, 2006")
		}

		return t.Format("02.01.2006")
	})

	return engine
}
