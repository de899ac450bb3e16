package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPages(t *testing.T) {
	s := newTestServer(t, Deps{})

	tests := []struct {
		path string
		want string
	}{
		{"/", "Content that sounds like you wrote it."},
		{"/pricing", `action="/api/checkout"`},
		{"/case-studies", "Northwind Logistics"},
		{"/about", "<h1>About</h1>"},
		{"/contact", `action="/api/contact"`},
		{"/dashboard", "Welcome back"},
		{"/dashboard/projects", "State of freight 2026"},
		{"/dashboard/briefs", "Holiday social campaign"},
		{"/dashboard/billing", `value="cus_demo"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(s, http.MethodGet, tt.path, "", "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestPages_NotFound(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := do(s, http.MethodGet, "/no-such-page", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestPages_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := do(s, http.MethodPost, "/pricing", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestDashboardBilling_ShowsConfiguredPlan(t *testing.T) {
	s, err := New(Config{Plan: "enterprise", CustomerID: "cus_acme"}, Deps{Limiter: unlimited()})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	w := do(s, http.MethodGet, "/dashboard/billing", "", "")
	assert.Contains(t, w.Body.String(), "Enterprise plan")
	assert.Contains(t, w.Body.String(), `value="cus_acme"`)
}
