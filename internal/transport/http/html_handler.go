package http

import (
	_ "embed"
	"net/http"
)

//go:embed dashboard.html
var dashboardPage []byte

// ServeDashboardPage serves the single-page dashboard UI. The page
// talks to the JSON API and the websocket endpoint; no server-side
// templating is involved.
func ServeDashboardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Write(dashboardPage)
	}
}
