package httpapi

import "net/http"

// Router builds the HTTP handler chain.
// Routes are registered explicitly and mounted under /api/v1; the
// health endpoint stays outside the auth wrapper so probes do not need
// credentials.
func (s *Server) Router(apiToken string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/accounts", s.accounts)
	mux.HandleFunc("/accounts/sync", s.syncAccounts)
	mux.HandleFunc("/goals", s.goals)
	mux.HandleFunc("/goals/", s.goalSubroutes)
	mux.HandleFunc("/overview", s.overview)

	protected := AuthMiddleware(apiToken, mux)

	root := http.NewServeMux()
	root.HandleFunc("/health", s.health)
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", protected))

	return root
}
