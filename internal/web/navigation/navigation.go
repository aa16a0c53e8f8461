// Package navigation holds the page title, language switch and breadcrumbs
// shared by the server-rendered pages.
package navigation

import (
	"net/url"

	"github.com/unilabvision/myuni/internal/i18n"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle   string
	Lang        i18n.Lang
	Breadcrumbs []BreadcrumbItem
	// Alternates maps each other language to the same page in that language.
	Alternates map[i18n.Lang]string
}

// NewContext creates a navigation context for a page rendered in lang.
func NewContext(pageTitle string, lang i18n.Lang) *Context {
	return &Context{
		PageTitle:   pageTitle,
		Lang:        lang,
		Breadcrumbs: make([]BreadcrumbItem, 0),
		Alternates:  make(map[i18n.Lang]string),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, link string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    link,
		Active: active,
	})

	return c
}

// WithAlternates links path in every language other than the current one.
func (c *Context) WithAlternates(path string) *Context {
	for _, l := range []i18n.Lang{i18n.TR, i18n.EN} {
		if l == c.Lang {
			continue
		}

		c.Alternates[l] = path + "?lang=" + url.QueryEscape(string(l))
	}

	return c
}

// Link returns path with the current language appended.
func (c *Context) Link(path string) string {
	return path + "?lang=" + url.QueryEscape(string(c.Lang))
}
