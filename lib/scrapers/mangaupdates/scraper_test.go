package mangaupdates

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// newTestServer serves the fixture pages under the same routes the real
// site uses, so the Client can be pointed at it unchanged.
func newTestServer(t testing.TB) *httptest.Server {
	serve := func(w http.ResponseWriter, name string) {
		contents, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		_, err = w.Write(contents)
		require.NoError(t, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/series.html", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("act") == "list" {
			switch query.Get("list") {
			case "read":
				serve(w, "list_read.html")
			case "wish", "unfinished":
				serve(w, "list_wish.html")
			default:
				serve(w, "list_invalid.html")
			}
			return
		}
		switch query.Get("id") {
		case "33":
			serve(w, "series_33.html")
		case "77":
			serve(w, "series_77.html")
		default:
			serve(w, "series_notfound.html")
		}
	})
	mux.HandleFunc("/stats.html", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			serve(w, "stats_read_p1.html")
		} else {
			serve(w, "stats_read_p2.html")
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t testing.TB) *Client {
	server := newTestServer(t)
	client, err := NewClient(ClientOptions{
		BaseURL: server.URL,
		Delay:   -1,
	})
	require.NoError(t, err)
	return client
}

// offlineClient never talks to anything, for tests that feed documents
// in directly.
func offlineClient(t testing.TB) *Client {
	client, err := NewClient(ClientOptions{Delay: -1})
	require.NoError(t, err)
	return client
}

func parseDocument(t testing.TB, contents string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	require.NoError(t, err)
	return doc
}

func loadDocument(t testing.TB, name string) *goquery.Document {
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return parseDocument(t, string(contents))
}
