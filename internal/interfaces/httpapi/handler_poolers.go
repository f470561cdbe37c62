package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-pool/internal/usecase"
)

func (h *Handler) PrimePoolerWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "PrimePoolerWeek")
	defer span.End()

	poolerID, err := parsePoolerIDParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.picksService.PrimeWeek(ctx, poolerID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "prime week failed", "pooler_id", poolerID, "week", int(week), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, primeDTO{
		PickRecordID: result.PickRecordID,
		Status:       string(result.Status),
	})
}

func (h *Handler) SubmitPoolerPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "SubmitPoolerPicks")
	defer span.End()

	poolerID, err := parsePoolerIDParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := parseWeekParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPicksRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.picksService.SubmitPicks(ctx, usecase.SubmitPicksInput{
		PoolerID:    poolerID,
		Week:        week,
		Picks:       req.Picks,
		FeaturePick: req.FeaturePick,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "pooler_id", poolerID, "week", int(week), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekPicksToDTO(record))
}

func (h *Handler) GetFavoriteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetFavoriteTeam")
	defer span.End()

	poolerID, err := parsePoolerIDParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pooler, err := h.picksService.GetPooler(ctx, poolerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pooler failed", "pooler_id", poolerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolerToDTO(pooler))
}

func (h *Handler) UpdateFavoriteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "UpdateFavoriteTeam")
	defer span.End()

	poolerID, err := parsePoolerIDParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req favoriteTeamRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pooler, err := h.picksService.UpdateFavoriteTeam(ctx, poolerID, req.Team)
	if err != nil {
		h.logger.WarnContext(ctx, "update favorite team failed", "pooler_id", poolerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolerToDTO(pooler))
}
