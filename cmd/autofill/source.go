package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/job-autofill/internal/browser"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/page"
)

// pageSource says where a page comes from: a local file, a URL fetched over
// HTTP, or a URL opened in Chrome.
type pageSource struct {
	Path    string
	URL     string
	Browser bool
}

func (s pageSource) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// openedPage is a loaded document plus the means to serialize and release it.
type openedPage struct {
	Doc    page.Document
	Render func() (string, error)
	Close  func()
}

func openPage(ctx context.Context, cfg config.Config, src pageSource) (*openedPage, error) {
	switch {
	case src.Browser:
		if src.URL == "" {
			return nil, fmt.Errorf("--browser needs --url")
		}
		return openInBrowser(ctx, cfg, src.URL)
	case src.Path != "":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.Path, err)
		}
		return parsedPage(string(data), src.URL)
	case src.URL != "":
		doc, err := fetch.Document(ctx, "", src.URL, fetch.DefaultOptions())
		if err != nil {
			return nil, err
		}
		return documentPage(doc), nil
	default:
		return nil, fmt.Errorf("a page is required: pass an HTML file or --url")
	}
}

func parsedPage(html, url string) (*openedPage, error) {
	doc, err := dom.ParseString(html, dom.WithURL(url))
	if err != nil {
		return nil, err
	}
	return documentPage(doc), nil
}

func documentPage(doc *dom.Document) *openedPage {
	return &openedPage{Doc: doc, Render: doc.Render, Close: doc.ClearHighlights}
}

func openInBrowser(ctx context.Context, cfg config.Config, url string) (*openedPage, error) {
	session, err := browser.NewSession(ctx, browser.Options{
		Headful: cfg.Headful,
		Timeout: time.Duration(cfg.BrowserTimeoutSeconds) * time.Second,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return nil, err
	}
	p, err := session.Open(url)
	if err != nil {
		session.Close()
		return nil, err
	}
	return &openedPage{
		Doc:    p,
		Render: p.HTML,
		Close: func() {
			p.Close()
			session.Close()
		},
	}, nil
}
