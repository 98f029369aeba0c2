package httpapi

import (
	"net/http"

	"github.com/riskibarqy/koralink/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	profiles ProfileLoader,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerProfileRoutes(mux, handler, profiles)
	registerTeamRoutes(mux, handler, profiles)
	registerInviteRoutes(mux, handler, profiles)
	registerMatchRoutes(mux, handler, profiles)
	registerFreeAgentRoutes(mux, handler, profiles)
	registerReportRoutes(mux, handler, profiles)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
