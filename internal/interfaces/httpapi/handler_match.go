package httpapi

import (
	"net/http"

	"github.com/riskibarqy/koralink/internal/domain/match"
	"github.com/riskibarqy/koralink/internal/usecase"
)

func (h *Handler) ListMyMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyMatches")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListMine(ctx, actor.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, matchToDTO))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.Create(ctx, actor, usecase.CreateMatchInput(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "home_team_id", req.HomeTeamID, "type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	item, err := h.matchService.Get(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RespondChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondChallenge")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req respondRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	updated, err := h.matchService.RespondChallenge(ctx, actor.PlayerID, matchID, *req.Accept)
	if err != nil {
		h.logger.WarnContext(ctx, "respond challenge failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	h.changeMatchStatus(w, r.WithContext(ctx), match.StatusFinished)
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	h.changeMatchStatus(w, r.WithContext(ctx), match.StatusCancelled)
}

func (h *Handler) changeMatchStatus(w http.ResponseWriter, r *http.Request, status match.Status) {
	ctx := r.Context()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	updated, err := h.matchService.UpdateStatus(ctx, actor.PlayerID, matchID, string(status))
	if err != nil {
		h.logger.WarnContext(ctx, "change match status failed", "match_id", matchID, "status", string(status), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) RateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RateTeam")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req rateTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	created, err := h.ratingService.Rate(ctx, actor.PlayerID, usecase.RateTeamInput{
		MatchID:    matchID,
		FromTeamID: req.FromTeamID,
		ToTeamID:   req.ToTeamID,
		Stars:      req.Stars,
		Note:       req.Note,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "rate team failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ratingToDTO(created))
}
