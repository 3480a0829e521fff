// Package web serves the single-page UI: a URL form, the generated
// prompt, and the model reply.
package web

import (
	"embed"
	"net/http"
)

//go:embed static/index.html
var staticFS embed.FS

// Index serves the UI page.
func Index(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
