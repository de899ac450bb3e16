package web

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// SiteName is shown in the title bar and header.
const SiteName = "Copydesk"

type navLink struct {
	Href  string
	Label string
}

var siteNav = []navLink{
	{"/pricing", "Pricing"},
	{"/case-studies", "Case studies"},
	{"/about", "About"},
	{"/contact", "Contact"},
	{"/dashboard", "Client login"},
}

var dashboardNav = []navLink{
	{"/dashboard", "Overview"},
	{"/dashboard/projects", "Projects"},
	{"/dashboard/briefs", "Briefs"},
	{"/dashboard/billing", "Billing"},
}

// isActive reports whether href should be highlighted for the current path.
func isActive(href, current string) bool {
	if href == "/dashboard" {
		return current == href
	}
	return current == href || strings.HasPrefix(current, href+"/")
}

func renderNav(h *htmlWriter, class string, links []navLink, current string) {
	h.raw(`<nav class="` + class + `"><ul>`)
	for _, l := range links {
		h.raw(`<li><a href="`)
		h.text(l.Href)
		h.raw(`"`)
		if isActive(l.Href, current) {
			h.raw(` aria-current="page" class="active"`)
		}
		h.raw(`>`)
		h.text(l.Label)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul></nav>`)
}

// Layout wraps its children in the site chrome. Pages under /dashboard also
// get the dashboard navigation.
func Layout(title, currentPath string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		if title != "" {
			h.text(title + " | ")
		}
		h.text(SiteName)
		h.raw(`</title><link rel="stylesheet" href="/static/site.css"></head><body>`)

		h.raw(`<header class="site-header"><a class="brand" href="/">`)
		h.text(SiteName)
		h.raw(`</a>`)
		renderNav(h, "site-nav", siteNav, currentPath)
		h.raw(`</header>`)

		dashboard := currentPath == "/dashboard" || strings.HasPrefix(currentPath, "/dashboard/")
		if dashboard {
			h.raw(`<div class="dashboard">`)
			renderNav(h, "dashboard-nav", dashboardNav, currentPath)
		}
		h.raw(`<main>`)
		h.render(ctx, templ.GetChildren(ctx))
		h.raw(`</main>`)
		if dashboard {
			h.raw(`</div>`)
		}

		h.raw(`<footer class="site-footer"><p>`)
		h.text("© " + SiteName + ". Content that sounds like you.")
		h.raw(`</p></footer></body></html>`)
	})
}
