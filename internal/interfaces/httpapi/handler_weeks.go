package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pickem-pool/internal/usecase"
)

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetCurrentWeek")
	defer span.End()

	week, err := h.picksService.CurrentWeek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(week))
}

func (h *Handler) ListWeekMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListWeekMatches")
	defer span.End()

	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.picksService.ListMatches(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week matches failed", "week", int(week), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetWeekResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetWeekResults")
	defer span.End()

	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ScoreWeek(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "score week failed", "week", int(week), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekResultToDTO(result))
}

func (h *Handler) GetWeekFeature(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetWeekFeature")
	defer span.End()

	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	feature, err := h.featureService.GetFeature(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get week feature failed", "week", int(week), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, featureToDTO(week, feature))
}

func (h *Handler) SetWeekFeature(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "SetWeekFeature")
	defer span.End()

	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setFeatureRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	feature, err := h.featureService.SetFeature(ctx, week, req.MatchIndex, req.TargetTotal)
	if err != nil {
		h.logger.WarnContext(ctx, "set week feature failed", "week", int(week), "match_index", req.MatchIndex, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, featureToDTO(week, feature))
}

// InvalidateWeekMatches drops the cached schedule so the next read goes to
// the provider.
func (h *Handler) InvalidateWeekMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "InvalidateWeekMatches")
	defer span.End()

	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if h.invalidateWeek == nil {
		writeError(ctx, w, fmt.Errorf("%w: match cache is disabled", usecase.ErrNotFound))
		return
	}

	h.invalidateWeek(ctx, week)
	h.logger.InfoContext(ctx, "week match cache invalidated", "week", int(week))
	writeSuccess(ctx, w, http.StatusOK, weekToDTO(week))
}
