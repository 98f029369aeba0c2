package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// Profile setup and theme work before onboarding, so they skip RequireProfile.
func registerProfileRoutes(mux *http.ServeMux, handler *Handler, profiles ProfileLoader) {
	mux.HandleFunc("POST /v1/profile/setup", handler.SetupProfile)
	mux.HandleFunc("GET /v1/profile", handler.GetProfile)
	mux.Handle("PUT /v1/profile", RequireProfile(profiles, http.HandlerFunc(handler.UpdateProfile)))
	mux.HandleFunc("DELETE /v1/profile", handler.Logout)
	mux.HandleFunc("GET /v1/preferences/theme", handler.GetTheme)
	mux.HandleFunc("PUT /v1/preferences/theme", handler.SetTheme)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, profiles ProfileLoader) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.Handle("POST /v1/teams", RequireProfile(profiles, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/me", RequireProfile(profiles, http.HandlerFunc(handler.ListMyTeams)))
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.Handle("DELETE /v1/teams/{teamID}", RequireProfile(profiles, http.HandlerFunc(handler.DeleteTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}/members/{playerID}", RequireProfile(profiles, http.HandlerFunc(handler.RemoveTeamMember)))
	mux.HandleFunc("GET /v1/teams/{teamID}/ratings", handler.ListTeamRatings)
}

func registerInviteRoutes(mux *http.ServeMux, handler *Handler, profiles ProfileLoader) {
	mux.Handle("POST /v1/teams/{teamID}/invites", RequireProfile(profiles, http.HandlerFunc(handler.SendInvite)))
	mux.Handle("GET /v1/invites/me", RequireProfile(profiles, http.HandlerFunc(handler.ListMyInvites)))
	mux.Handle("POST /v1/invites/{inviteID}/respond", RequireProfile(profiles, http.HandlerFunc(handler.RespondInvite)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, profiles ProfileLoader) {
	mux.Handle("GET /v1/matches/me", RequireProfile(profiles, http.HandlerFunc(handler.ListMyMatches)))
	mux.Handle("POST /v1/matches", RequireProfile(profiles, http.HandlerFunc(handler.CreateMatch)))
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.Handle("POST /v1/matches/{matchID}/respond", RequireProfile(profiles, http.HandlerFunc(handler.RespondChallenge)))
	mux.Handle("POST /v1/matches/{matchID}/finish", RequireProfile(profiles, http.HandlerFunc(handler.FinishMatch)))
	mux.Handle("POST /v1/matches/{matchID}/cancel", RequireProfile(profiles, http.HandlerFunc(handler.CancelMatch)))
	mux.Handle("POST /v1/matches/{matchID}/ratings", RequireProfile(profiles, http.HandlerFunc(handler.RateTeam)))
}

func registerFreeAgentRoutes(mux *http.ServeMux, handler *Handler, profiles ProfileLoader) {
	mux.HandleFunc("GET /v1/free-agents", handler.ListFreeAgents)
	mux.Handle("GET /v1/free-agents/me", RequireProfile(profiles, http.HandlerFunc(handler.GetMyFreeAgentStatus)))
	mux.Handle("POST /v1/free-agents/toggle", RequireProfile(profiles, http.HandlerFunc(handler.ToggleFreeAgent)))
}

func registerReportRoutes(mux *http.ServeMux, handler *Handler, profiles ProfileLoader) {
	mux.HandleFunc("GET /v1/reports", handler.ListReports)
	mux.Handle("POST /v1/reports", RequireProfile(profiles, http.HandlerFunc(handler.SubmitReport)))
}
