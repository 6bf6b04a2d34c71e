package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	if cfg.Live != nil {
		mux.Handle("GET /v1/live", cfg.Live)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/grouped", handler.ListMatchesGrouped)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/topscorers", handler.ListTopScorers)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, token string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAdmin(token, fn))
	}

	admin("POST /v1/admin/teams", handler.CreateTeam)
	admin("PUT /v1/admin/teams/{teamID}", handler.UpdateTeam)
	admin("DELETE /v1/admin/teams/{teamID}", handler.DeleteTeam)

	admin("POST /v1/admin/players", handler.CreatePlayer)
	admin("PUT /v1/admin/players/{playerID}", handler.UpdatePlayer)

	admin("POST /v1/admin/matches", handler.CreateMatch)
	admin("PUT /v1/admin/matches/{matchID}", handler.UpdateMatch)
	admin("POST /v1/admin/matches/{matchID}/start", handler.StartMatch)
	admin("POST /v1/admin/matches/{matchID}/finish", handler.FinishMatch)
	admin("POST /v1/admin/matches/{matchID}/postpone", handler.PostponeMatch)
	admin("POST /v1/admin/matches/{matchID}/cancel", handler.CancelMatch)
	admin("POST /v1/admin/matches/{matchID}/reopen", handler.ReopenMatch)
	admin("POST /v1/admin/matches/{matchID}/reschedule", handler.RescheduleMatch)
	admin("POST /v1/admin/matches/{matchID}/goals", handler.RecordGoal)

	admin("POST /v1/admin/read-model/refresh", handler.RefreshReadModel)
}
