package bot

import (
	"log/slog"
	"net/http"
)

// ServeLiveness answers platform health probes with a constant 200. It
// shares no state with the bot and is meant to run on its own goroutine;
// hosting platforms kill the process when the port never binds, so a bind
// failure is logged rather than swallowed.
func ServeLiveness(port string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("OK"))
	})

	log.Info("liveness server listening", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error("liveness server stopped", "error", err)
	}
}
