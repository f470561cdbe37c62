package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/riskibarqy/pickem-pool/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	picksService   *usecase.PicksService
	featureService *usecase.FeatureService
	scoringService *usecase.ScoringService
	seasonService  *usecase.SeasonService
	statsService   *usecase.StatsService
	invalidateWeek func(ctx context.Context, week pickem.Week)
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	picksService *usecase.PicksService,
	featureService *usecase.FeatureService,
	scoringService *usecase.ScoringService,
	seasonService *usecase.SeasonService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		picksService:   picksService,
		featureService: featureService,
		scoringService: scoringService,
		seasonService:  seasonService,
		statsService:   statsService,
		logger:         logger,
		validator:      validator.New(),
	}
}

// SetMatchCacheInvalidator enables the week schedule refresh route.
func (h *Handler) SetMatchCacheInvalidator(fn func(ctx context.Context, week pickem.Week)) {
	h.invalidateWeek = fn
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeJSON reads a size-limited JSON body into target and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, target any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}

func parseWeekParam(r *http.Request) (pickem.Week, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: week must be an integer, got %q", usecase.ErrInvalidInput, raw)
	}
	week, err := pickem.WeekFromLegacyRound(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return week, nil
}

func parsePoolerIDParam(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("poolerID"))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: pooler id must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return v, nil
}
