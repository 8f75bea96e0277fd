// amsmock serves an in-memory stand-in for the AMS, identity and HR
// services, for developing the console without the real backends.
package main

import (
	"net/http"
	"os"

	"ams-console/internal/amstest"
	"ams-console/internal/logger"
	"ams-console/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	srv := amstest.NewServer()
	amstest.SeedDemo(srv)

	r := chi.NewRouter()
	if os.Getenv("ENABLE_METRICS") == "true" {
		m := metrics.NewRequestMetrics()
		r.Use(m.Middleware())
		r.Get("/metrics", m.Handler().ServeHTTP)
	}
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	r.Mount("/", srv.Handler())

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "5202"
	}
	lg.Infow("amsmock listening", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		lg.Fatalw("serve failed", "error", err)
	}
}
