// Package web renders the marketing site and the client dashboard.
package web

import (
	"time"
)

// CaseStudy is a published client engagement
type CaseStudy struct {
	Slug     string
	Client   string
	Industry string
	Summary  string
	Results  []string
	Quote    string
	QuotedBy string
}

// ProjectStatus is where a dashboard project sits in production
type ProjectStatus string

const (
	ProjectDrafting  ProjectStatus = "drafting"
	ProjectInReview  ProjectStatus = "in_review"
	ProjectDelivered ProjectStatus = "delivered"
)

// Project is a piece of content in production for the client
type Project struct {
	ID          string
	Title       string
	ContentType string
	Status      ProjectStatus
	WordCount   int
	DueDate     time.Time
}

// BriefSummary is a submitted brief as listed on the dashboard
type BriefSummary struct {
	ID          string
	Title       string
	ContentType string
	Status      string
	SubmittedAt time.Time
}

// Invoice is one billing period
type Invoice struct {
	Number string
	Date   time.Time
	Amount int // whole US dollars
	Paid   bool
}

// DashboardSummary is the headline numbers on the dashboard home
type DashboardSummary struct {
	Active         int
	InReview       int
	Delivered      int
	WordsDelivered int
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var caseStudies = []CaseStudy{
	{
		Slug:     "northwind-logistics",
		Client:   "Northwind Logistics",
		Industry: "Freight & supply chain",
		Summary:  "Rebuilt a neglected blog into the top inbound channel for a mid-market freight broker.",
		Results: []string{
			"3.4x organic traffic in six months",
			"41% of demo requests now start on a blog post",
			"Publishing cadence from monthly to twice weekly",
		},
		Quote:    "They sound more like us than we do.",
		QuotedBy: "VP Marketing, Northwind Logistics",
	},
	{
		Slug:     "ledgerly",
		Client:   "Ledgerly",
		Industry: "Fintech",
		Summary:  "Turned dense compliance material into an onboarding email sequence customers actually finish.",
		Results: []string{
			"Onboarding completion up from 52% to 78%",
			"Support tickets during setup down by a third",
		},
		Quote:    "The sequence pays for the retainer every month.",
		QuotedBy: "Head of Growth, Ledgerly",
	},
	{
		Slug:     "harbor-health",
		Client:   "Harbor Health",
		Industry: "Healthcare",
		Summary:  "Produced patient-facing landing pages for twelve clinics under one consistent voice.",
		Results: []string{
			"12 clinic pages shipped in five weeks",
			"Average time on page doubled",
		},
		Quote:    "Every clinic finally reads like part of the same family.",
		QuotedBy: "Director of Communications, Harbor Health",
	},
}

var projects = []Project{
	{ID: "prj-1042", Title: "Q3 product launch announcement", ContentType: "blog_post", Status: ProjectDrafting, WordCount: 1200, DueDate: date(2026, 10, 24)},
	{ID: "prj-1039", Title: "Welcome email sequence", ContentType: "email_sequence", Status: ProjectInReview, WordCount: 2400, DueDate: date(2026, 10, 21)},
	{ID: "prj-1031", Title: "Pricing page refresh", ContentType: "landing_page", Status: ProjectInReview, WordCount: 800, DueDate: date(2026, 10, 20)},
	{ID: "prj-1027", Title: "Customer story: Ledgerly", ContentType: "case_study", Status: ProjectDelivered, WordCount: 1600, DueDate: date(2026, 10, 3)},
	{ID: "prj-1019", Title: "State of freight 2026", ContentType: "whitepaper", Status: ProjectDelivered, WordCount: 5200, DueDate: date(2026, 9, 18)},
}

var briefs = []BriefSummary{
	{ID: "brf-208", Title: "Q3 product launch announcement", ContentType: "blog_post", Status: "in production", SubmittedAt: date(2026, 10, 9)},
	{ID: "brf-204", Title: "Welcome email sequence", ContentType: "email_sequence", Status: "in production", SubmittedAt: date(2026, 10, 1)},
	{ID: "brf-199", Title: "Holiday social campaign", ContentType: "social_media", Status: "received", SubmittedAt: date(2026, 10, 14)},
}

var invoices = []Invoice{
	{Number: "INV-2026-010", Date: date(2026, 10, 1), Amount: 1299, Paid: false},
	{Number: "INV-2026-009", Date: date(2026, 9, 1), Amount: 1299, Paid: true},
	{Number: "INV-2026-008", Date: date(2026, 8, 1), Amount: 1299, Paid: true},
	{Number: "INV-2026-007", Date: date(2026, 7, 1), Amount: 499, Paid: true},
}

// CaseStudies returns the published case studies.
func CaseStudies() []CaseStudy {
	return append([]CaseStudy(nil), caseStudies...)
}

// Projects returns the client's projects, newest first.
func Projects() []Project {
	return append([]Project(nil), projects...)
}

// Briefs returns the client's submitted briefs.
func Briefs() []BriefSummary {
	return append([]BriefSummary(nil), briefs...)
}

// Invoices returns the client's invoices, newest first.
func Invoices() []Invoice {
	return append([]Invoice(nil), invoices...)
}

// Summarize counts projects by status.
func Summarize(ps []Project) DashboardSummary {
	var s DashboardSummary
	for _, p := range ps {
		switch p.Status {
		case ProjectDrafting:
			s.Active++
		case ProjectInReview:
			s.Active++
			s.InReview++
		case ProjectDelivered:
			s.Delivered++
			s.WordsDelivered += p.WordCount
		}
	}
	return s
}
