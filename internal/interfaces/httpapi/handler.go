package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/koralink/internal/domain/player"
	"github.com/riskibarqy/koralink/internal/platform/logging"
	"github.com/riskibarqy/koralink/internal/usecase"
)

type Handler struct {
	profileService   *usecase.ProfileService
	themeService     *usecase.ThemeService
	teamService      *usecase.TeamService
	inviteService    *usecase.InviteService
	matchService     *usecase.MatchService
	ratingService    *usecase.RatingService
	freeAgentService *usecase.FreeAgentService
	reportService    *usecase.ReportService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	profileService *usecase.ProfileService,
	themeService *usecase.ThemeService,
	teamService *usecase.TeamService,
	inviteService *usecase.InviteService,
	matchService *usecase.MatchService,
	ratingService *usecase.RatingService,
	freeAgentService *usecase.FreeAgentService,
	reportService *usecase.ReportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		profileService:   profileService,
		themeService:     themeService,
		teamService:      teamService,
		inviteService:    inviteService,
		matchService:     matchService,
		ratingService:    ratingService,
		freeAgentService: freeAgentService,
		reportService:    reportService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

const maxRequestBodyBytes = 64 << 10

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeRequest reads a strict JSON body and runs the validator tags on it.
// An empty body decodes to the zero request.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, req any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBodyBytes)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := strictJSON.Unmarshal(body, req); err != nil {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return h.validateRequest(ctx, req)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requireActor(ctx context.Context) (player.Profile, error) {
	profile, ok := profileFromContext(ctx)
	if !ok {
		return player.Profile{}, fmt.Errorf("%w: profile is missing from request context", usecase.ErrUnauthorized)
	}
	return profile, nil
}
