package middleware

import (
	"net/http"
	"os"
	"path/filepath"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"><rect width="200" height="200" fill="#e8f5e9"/><path d="M100 45l35 60h-70z" fill="#81c784"/><circle cx="100" cy="135" r="18" fill="#66bb6a"/><text x="100" y="180" text-anchor="middle" font-family="Arial" font-size="14" fill="#388e3c">ECO</text></svg>`

// StaticFileServer serves region and attraction photos, falling back to a
// placeholder image when a file is missing.
func StaticFileServer(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))

		if _, err := os.Stat(path); err == nil {
			w.Header().Set("Cache-Control", "public, max-age=2592000")
			http.ServeFile(w, r, path)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write([]byte(placeholderSVG))
	})
}
