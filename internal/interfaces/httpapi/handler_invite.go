package httpapi

import "net/http"

func (h *Handler) SendInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendInvite")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sendInviteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	sent, err := h.inviteService.Send(ctx, actor, teamID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "send invite failed", "team_id", teamID, "to_player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, inviteToDTO(sent))
}

func (h *Handler) ListMyInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvites")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.inviteService.ListMine(ctx, actor.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, inviteToDTO))
}

func (h *Handler) RespondInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondInvite")
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

	inviteID := r.PathValue("inviteID")
	resolved, err := h.inviteService.Respond(ctx, actor.PlayerID, inviteID, *req.Accept)
	if err != nil {
		h.logger.WarnContext(ctx, "respond invite failed", "invite_id", inviteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, inviteToDTO(resolved))
}
