package httpapi

import (
	"net/http"

	"github.com/riskibarqy/koralink/internal/usecase"
)

func (h *Handler) ListFreeAgents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFreeAgents")
	defer span.End()

	query := r.URL.Query()
	items, err := h.freeAgentService.ListActive(ctx, usecase.FreeAgentFilter{
		City:     query.Get("city"),
		Position: query.Get("position"),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, freeAgentToDTO))
}

func (h *Handler) GetMyFreeAgentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyFreeAgentStatus")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	active, err := h.freeAgentService.IsActive(ctx, actor.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, freeAgentStatusDTO{Active: active})
}

func (h *Handler) ToggleFreeAgent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleFreeAgent")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req toggleFreeAgentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, active, err := h.freeAgentService.Toggle(ctx, actor, req.Note)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle free agent failed", "player_id", actor.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, struct {
		Active bool         `json:"active"`
		Item   freeAgentDTO `json:"item"`
	}{Active: active, Item: freeAgentToDTO(item)})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReports")
	defer span.End()

	items, err := h.reportService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, reportToDTO))
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitReport")
	defer span.End()

	actor, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitReportRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.reportService.Submit(ctx, actor, usecase.SubmitReportInput(req))
	if err != nil {
		h.logger.WarnContext(ctx, "submit report failed", "target_type", req.TargetType, "target_id", req.TargetID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, reportToDTO(created))
}
