package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><form><input name="email"></form></body></html>`))
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, `<input name="email">`)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestPage_FollowsRedirectURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/apply", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/jobs/42/apply", http.StatusFound)
	})
	mux.HandleFunc("/jobs/42/apply", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<form></form>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := Page(context.Background(), server.URL+"/apply", nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/jobs/42/apply", result.URL)
}

func TestPage_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/form"} {
		_, err := Page(context.Background(), u, nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestPage_RestrictedURL(t *testing.T) {
	_, err := Page(context.Background(), "chrome://settings", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restricted")
}

func TestPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := Page(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestPage_RejectsNonHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	_, err := Page(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestPage_SizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBytes = 1024
	_, err := Page(context.Background(), server.URL, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 1024 bytes")

	opts.MaxBytes = 2048
	result, err := Page(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Len(t, result.HTML, 2048)
}

func TestIsRestrictedURL(t *testing.T) {
	restricted := []string{
		"chrome://extensions", "chrome-extension://abc/popup.html", "moz-extension://x",
		"edge://settings", "about:blank", "file:///tmp/form.html", "data:text/html,<p>",
		"javascript:void(0)", "chrome-search://local-ntp", "  CHROME://flags",
	}
	for _, u := range restricted {
		assert.True(t, IsRestrictedURL(u), u)
	}
	for _, u := range []string{"https://jobs.example.com/apply", "http://localhost:8080/form"} {
		assert.False(t, IsRestrictedURL(u), u)
	}
}

func TestDocument_Sources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<form><input name="fetched"></form>`))
	}))
	defer server.Close()
	ctx := context.Background()

	doc, err := Document(ctx, `<input name="given">`, server.URL+"/apply", nil)
	require.NoError(t, err)
	assert.Len(t, doc.Find(`[name="given"]`), 1)
	assert.Equal(t, server.URL+"/apply", doc.URL())

	doc, err = Document(ctx, "  ", server.URL, nil)
	require.NoError(t, err)
	assert.Len(t, doc.Find(`[name="fetched"]`), 1)
	assert.Equal(t, server.URL, doc.URL())
}

func TestDocument_Rejections(t *testing.T) {
	ctx := context.Background()

	_, err := Document(ctx, "", "", nil)
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Document(ctx, "", "ftp://example.com/form", nil)
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	// Markup does not bypass the restricted-page rule.
	for _, markup := range []string{"", "<input>"} {
		_, err = Document(ctx, markup, "chrome://settings", nil)
		var fe *Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "chrome://settings", fe.URL)
	}
}
