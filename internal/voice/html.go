package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/copydesk/internal/fetch"
)

// Elements whose text is page furniture rather than brand copy.
const boilerplateSelector = "script, style, noscript, nav, header, footer, aside, form, svg"

// Elements whose text counts as copy, in document order.
const copySelector = "h1, h2, h3, h4, p, li, blockquote"

// SampleFromHTML extracts the readable copy from an HTML page. It prefers
// <article>, then <main>, then <body>. Blocks are separated by blank lines.
func SampleFromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find(boilerplateSelector).Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var blocks []string
	root.Find(copySelector).Each(func(_ int, sel *goquery.Selection) {
		// Nested copy elements (p inside li, etc.) are reported by the outer one.
		if sel.ParentsFiltered(copySelector).Length() > 0 {
			return
		}
		if text := strings.Join(strings.Fields(sel.Text()), " "); text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		text := strings.Join(strings.Fields(root.Text()), " ")
		return text, nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

// SampleFetcher imports page copy as a writing sample. With a Browser set,
// pages whose static HTML yields less than MinSampleLength characters are
// rendered again in the browser.
type SampleFetcher struct {
	Client  *http.Client
	Browser fetch.Renderer
}

// Fetch downloads pageURL and extracts its copy with SampleFromHTML.
func (f *SampleFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	page, err := fetch.Page(ctx, pageURL, &fetch.Options{Client: f.Client})
	if err != nil {
		return "", err
	}
	text, err := SampleFromHTML(bytes.NewReader(page.HTML))
	if err != nil {
		return "", err
	}
	if f.Browser == nil || !fetch.ShouldUseBrowser(text, MinSampleLength) {
		return text, nil
	}

	log.Printf("[fetch-sample] %s has little static copy; rendering in browser", pageURL)
	html, err := f.Browser.Render(ctx, pageURL)
	if err != nil {
		log.Printf("[fetch-sample] Browser fallback failed for %s: %v", pageURL, err)
		return text, nil
	}
	return SampleFromHTML(bytes.NewReader(html))
}
