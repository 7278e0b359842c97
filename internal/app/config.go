package app

import "net/http"

// Config holds runtime wiring options for building the CLI app.
type Config struct {
	Home      string       // config directory, e.g. $HOME/.geoseal
	ServerURL string       // drop server base URL, e.g. http://127.0.0.1:8750
	HTTP      *http.Client // optional; defaults to http.DefaultClient
}
