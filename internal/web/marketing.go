package web

import (
	"context"

	"github.com/a-h/templ"

	"github.com/jonathan/copydesk/internal/types"
)

// Home is the landing page.
func Home(plans []types.Plan, studies []CaseStudy) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="hero"><h1>Content that sounds like you wrote it.</h1>`)
		h.raw(`<p>Professional writers, guided by an analysis of your brand voice, producing blog posts, landing pages and email sequences on a monthly plan.</p>`)
		h.raw(`<a class="button primary" href="/pricing">See plans</a> <a class="button" href="/contact">Talk to us</a></section>`)

		h.raw(`<section class="how-it-works"><h2>How it works</h2><ol>`)
		h.raw(`<li><strong>Share your writing.</strong> Paste two to five samples and we build a voice profile from them.</li>`)
		h.raw(`<li><strong>Send a brief.</strong> Tell us the audience, the goal and the deadline.</li>`)
		h.raw(`<li><strong>Review and publish.</strong> Drafts arrive in your dashboard ready for comments.</li>`)
		h.raw(`</ol></section>`)

		for _, p := range plans {
			if !p.Highlighted {
				continue
			}
			h.raw(`<section class="featured-plan"><h2>Most teams start with `)
			h.text(p.Name)
			h.raw(`</h2><p>`)
			h.text(p.Description)
			h.raw(`</p><p class="price">`)
			h.text(dollars(p.MonthlyPrice))
			h.raw(`<span>/month</span></p></section>`)
		}

		if len(studies) > 0 {
			h.raw(`<section class="case-study-teasers"><h2>Recent work</h2>`)
			for _, s := range studies {
				h.raw(`<article><h3><a href="/case-studies#`)
				h.text(s.Slug)
				h.raw(`">`)
				h.text(s.Client)
				h.raw(`</a></h3><p>`)
				h.text(s.Summary)
				h.raw(`</p></article>`)
			}
			h.raw(`</section>`)
		}
	})
}

// Pricing lists the plans, each with a checkout form.
func Pricing(plans []types.Plan) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="pricing"><h1>Pricing</h1><p>Monthly plans. Cancel any time from your billing portal.</p><div class="plans">`)
		for _, p := range plans {
			h.raw(`<article class="plan`)
			if p.Highlighted {
				h.raw(` highlighted`)
			}
			h.raw(`" id="plan-`)
			h.text(string(p.ID))
			h.raw(`"><h2>`)
			h.text(p.Name)
			h.raw(`</h2><p class="price">`)
			h.text(dollars(p.MonthlyPrice))
			h.raw(`<span>/month</span></p><p>`)
			h.text(p.Description)
			h.raw(`</p><ul>`)
			for _, f := range p.Features {
				h.raw(`<li>`)
				h.text(f)
				h.raw(`</li>`)
			}
			h.raw(`</ul><form method="post" action="/api/checkout">`)
			h.raw(`<input type="hidden" name="plan" value="`)
			h.text(string(p.ID))
			h.raw(`"><input type="email" name="email" placeholder="you@company.com" aria-label="Email">`)
			h.raw(`<button type="submit">Choose `)
			h.text(p.Name)
			h.raw(`</button></form></article>`)
		}
		h.raw(`</div></section>`)
	})
}

// CaseStudiesPage lists every case study in full.
func CaseStudiesPage(studies []CaseStudy) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="case-studies"><h1>Case studies</h1>`)
		for _, s := range studies {
			h.raw(`<article id="`)
			h.text(s.Slug)
			h.raw(`"><h2>`)
			h.text(s.Client)
			h.raw(`</h2><p class="industry">`)
			h.text(s.Industry)
			h.raw(`</p><p>`)
			h.text(s.Summary)
			h.raw(`</p><ul class="results">`)
			for _, r := range s.Results {
				h.raw(`<li>`)
				h.text(r)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
			if s.Quote != "" {
				h.raw(`<blockquote><p>`)
				h.text(s.Quote)
				h.raw(`</p><cite>`)
				h.text(s.QuotedBy)
				h.raw(`</cite></blockquote>`)
			}
			h.raw(`</article>`)
		}
		h.raw(`</section>`)
	})
}

// About describes the studio.
func About() templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="about"><h1>About</h1>`)
		h.raw(`<p>We are a small team of editors and writers who have spent years ghostwriting for founders and marketing teams.</p>`)
		h.raw(`<p>Every engagement starts with your own writing. We analyze tone, vocabulary and structure so that the first draft already reads like your brand, and we keep that profile on file for every piece that follows.</p>`)
		h.raw(`<p>Language models help us with research and first passes. People do the writing, editing and fact-checking.</p>`)
		h.raw(`</section>`)
	})
}

// ContactForm holds what the visitor typed and any per-field errors, so the
// form can be shown again after a failed submission.
type ContactForm struct {
	Values types.ContactRequest
	Errors map[string]string
	Sent   bool
}

// Contact is the contact page.
func Contact(form ContactForm) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="contact"><h1>Contact</h1>`)
		if form.Sent {
			h.raw(`<p class="notice success">Thanks, we will be in touch within one business day.</p></section>`)
			return
		}
		h.raw(`<form method="post" action="/api/contact">`)
		field := func(name, label, kind, value string) {
			h.raw(`<label>`)
			h.text(label)
			if kind == "textarea" {
				h.raw(`<textarea name="`)
				h.text(name)
				h.raw(`" rows="6">`)
				h.text(value)
				h.raw(`</textarea>`)
			} else {
				h.raw(`<input type="`)
				h.text(kind)
				h.raw(`" name="`)
				h.text(name)
				h.raw(`" value="`)
				h.text(value)
				h.raw(`">`)
			}
			h.raw(`</label>`)
			if msg := form.Errors[name]; msg != "" {
				h.raw(`<p class="field-error">`)
				h.text(msg)
				h.raw(`</p>`)
			}
		}
		field("name", "Name", "text", form.Values.Name)
		field("email", "Email", "email", form.Values.Email)
		field("company", "Company", "text", form.Values.Company)
		field("message", "How can we help?", "textarea", form.Values.Message)
		h.raw(`<button type="submit">Send</button></form></section>`)
	})
}

// NotFound is shown for unknown paths.
func NotFound() templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="not-found"><h1>Page not found</h1><p>The page you asked for does not exist. <a href="/">Go home</a>.</p></section>`)
	})
}
