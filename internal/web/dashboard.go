package web

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jonathan/copydesk/internal/types"
)

var statusLabels = map[ProjectStatus]string{
	ProjectDrafting:  "Drafting",
	ProjectInReview:  "Ready for review",
	ProjectDelivered: "Delivered",
}

func projectTable(h *htmlWriter, ps []Project) {
	if len(ps) == 0 {
		h.raw(`<p class="empty">No projects yet.</p>`)
		return
	}
	h.raw(`<table class="projects"><thead><tr><th>Project</th><th>Type</th><th>Length</th><th>Due</th><th>Status</th></tr></thead><tbody>`)
	for _, p := range ps {
		h.raw(`<tr><td>`)
		h.text(p.Title)
		h.raw(`</td><td>`)
		h.text(label(p.ContentType))
		h.raw(`</td><td>`)
		h.text(words(p.WordCount))
		h.raw(`</td><td>`)
		h.text(day(p.DueDate))
		h.raw(`</td><td><span class="status status-`)
		h.text(string(p.Status))
		h.raw(`">`)
		h.text(statusLabels[p.Status])
		h.raw(`</span></td></tr>`)
	}
	h.raw(`</tbody></table>`)
}

// Dashboard is the client's overview page.
func Dashboard(summary DashboardSummary, recent []Project) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="overview"><h1>Welcome back</h1><dl class="stats">`)
		stat := func(name, value string) {
			h.raw(`<div><dt>`)
			h.text(name)
			h.raw(`</dt><dd>`)
			h.text(value)
			h.raw(`</dd></div>`)
		}
		stat("Active projects", strconv.Itoa(summary.Active))
		stat("Awaiting your review", strconv.Itoa(summary.InReview))
		stat("Delivered", strconv.Itoa(summary.Delivered))
		stat("Words delivered", words(summary.WordsDelivered))
		h.raw(`</dl><h2>Recent projects</h2>`)
		projectTable(h, recent)
		h.raw(`<p><a href="/dashboard/projects">All projects</a></p></section>`)
	})
}

// ProjectsPage lists every project.
func ProjectsPage(ps []Project) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section><h1>Projects</h1>`)
		projectTable(h, ps)
		h.raw(`</section>`)
	})
}

// BriefsPage lists submitted briefs.
func BriefsPage(bs []BriefSummary) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section><h1>Briefs</h1>`)
		if len(bs) == 0 {
			h.raw(`<p class="empty">You have not submitted any briefs.</p></section>`)
			return
		}
		h.raw(`<ul class="briefs">`)
		for _, b := range bs {
			h.raw(`<li><h2>`)
			h.text(b.Title)
			h.raw(`</h2><p>`)
			h.textf("%s · submitted %s · %s", label(b.ContentType), day(b.SubmittedAt), b.Status)
			h.raw(`</p></li>`)
		}
		h.raw(`</ul></section>`)
	})
}

// BillingPage shows the current plan, invoices and a link to the portal.
func BillingPage(plan types.Plan, customerID string, invs []Invoice) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="billing"><h1>Billing</h1><div class="current-plan"><h2>`)
		h.text(plan.Name)
		h.raw(` plan</h2><p class="price">`)
		h.text(dollars(plan.MonthlyPrice))
		h.raw(`<span>/month</span></p>`)
		h.raw(`<form method="post" action="/api/portal"><input type="hidden" name="customerId" value="`)
		h.text(customerID)
		h.raw(`"><button type="submit">Manage subscription</button></form></div>`)

		h.raw(`<h2>Invoices</h2><table class="invoices"><thead><tr><th>Invoice</th><th>Date</th><th>Amount</th><th>Status</th></tr></thead><tbody>`)
		for _, inv := range invs {
			h.raw(`<tr><td>`)
			h.text(inv.Number)
			h.raw(`</td><td>`)
			h.text(day(inv.Date))
			h.raw(`</td><td>`)
			h.text(dollars(inv.Amount))
			h.raw(`</td><td>`)
			if inv.Paid {
				h.raw(`<span class="status status-paid">Paid</span>`)
			} else {
				h.raw(`<span class="status status-open">Open</span>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	})
}
