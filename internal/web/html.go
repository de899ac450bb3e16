package web

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// htmlWriter keeps the first write error so markup can be emitted without
// checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) textf(format string, args ...any) {
	h.text(fmt.Sprintf(format, args...))
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

// component turns a markup function into a templ.Component.
func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

func dollars(n int) string {
	return "$" + humanize.Comma(int64(n))
}

func words(n int) string {
	return humanize.Comma(int64(n)) + " words"
}

func day(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// label turns "email_sequence" into "Email sequence".
func label(id string) string {
	s := strings.ReplaceAll(id, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
