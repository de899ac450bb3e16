package server

import (
	"log"
	"net/http"

	"github.com/jonathan/copydesk/internal/billing"
	"github.com/jonathan/copydesk/internal/web"
)

// recentProjects is how many projects the dashboard overview lists.
const recentProjects = 3

// page renders a full HTML page, falling back to a plain 500 on failure.
func (s *Server) page(w http.ResponseWriter, r *http.Request, p web.Page) {
	if err := web.Write(w, r, p); err != nil {
		log.Printf("[page] Error rendering %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Body: web.Home(billing.Plans(), web.CaseStudies())})
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Pricing", Body: web.Pricing(billing.Plans())})
}

func (s *Server) handleCaseStudies(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Case studies", Body: web.CaseStudiesPage(web.CaseStudies())})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "About", Body: web.About()})
}

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Contact", Body: web.Contact(web.ContactForm{})})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Not found", StatusCode: http.StatusNotFound, Body: web.NotFound()})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	projects := web.Projects()
	recent := projects
	if len(recent) > recentProjects {
		recent = recent[:recentProjects]
	}
	s.page(w, r, web.Page{Title: "Dashboard", Body: web.Dashboard(web.Summarize(projects), recent)})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Projects", Body: web.ProjectsPage(web.Projects())})
}

func (s *Server) handleBriefs(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Briefs", Body: web.BriefsPage(web.Briefs())})
}

func (s *Server) handleBilling(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, web.Page{Title: "Billing", Body: web.BillingPage(s.plan, s.customerID, web.Invoices())})
}
