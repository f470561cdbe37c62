package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Week path values accept canonical weeks (1..22) and the legacy playoff
// round codes (160, 125, 150, 200).
func registerWeekRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/weeks/{week}/matches", handler.ListWeekMatches)
	mux.HandleFunc("GET /v1/weeks/{week}/results", handler.GetWeekResults)
	mux.HandleFunc("GET /v1/weeks/{week}/feature", handler.GetWeekFeature)
	mux.Handle("PUT /v1/weeks/{week}/feature", RequireAdminToken(adminToken, http.HandlerFunc(handler.SetWeekFeature)))
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/season/standings", handler.GetSeasonStandings)
	mux.HandleFunc("GET /v1/season/stats", handler.GetPoolStats)
	mux.HandleFunc("GET /v1/season/blame/{team}", handler.GetTeamBlame)
}

func registerPoolerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/poolers/{poolerID}/weeks/{week}/prime", handler.PrimePoolerWeek)
	mux.HandleFunc("PUT /v1/poolers/{poolerID}/weeks/{week}/picks", handler.SubmitPoolerPicks)
	mux.HandleFunc("GET /v1/poolers/{poolerID}/favorite-team", handler.GetFavoriteTeam)
	mux.HandleFunc("PUT /v1/poolers/{poolerID}/favorite-team", handler.UpdateFavoriteTeam)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/internal/cache/warm", RequireAdminToken(adminToken, http.HandlerFunc(handler.WarmScoreCache)))
	mux.Handle("DELETE /v1/internal/cache/weeks/{week}/matches", RequireAdminToken(adminToken, http.HandlerFunc(handler.InvalidateWeekMatches)))
}
