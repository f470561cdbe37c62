package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-pool/internal/platform/id"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	adminToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerWeekRoutes(mux, handler, adminToken)
	registerSeasonRoutes(mux, handler)
	registerPoolerRoutes(mux, handler)
	registerInternalRoutes(mux, handler, adminToken)

	return RequestTracing(
		RequestID(id.NewRandomGenerator("req"),
			RequestLogging(logger,
				CORS(corsAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
