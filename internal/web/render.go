package web

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
)

// Page is one full page response.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

// Write renders page inside the site layout. Nothing is written to w if
// rendering fails, so the caller can still send an error response.
func Write(w http.ResponseWriter, r *http.Request, page Page) error {
	status := page.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}

	var buf bytes.Buffer
	ctx := templ.WithChildren(r.Context(), page.Body)
	if err := Layout(page.Title, r.URL.Path).Render(ctx, &buf); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}
