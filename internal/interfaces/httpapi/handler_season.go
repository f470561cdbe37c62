package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetSeasonStandings")
	defer span.End()

	standings, err := h.seasonService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "season standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}

func (h *Handler) GetPoolStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetPoolStats")
	defer span.End()

	stats, err := h.statsService.PoolStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "pool stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolStatsToDTO(stats))
}

func (h *Handler) GetTeamBlame(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetTeamBlame")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	report, err := h.statsService.TeamBlame(ctx, team)
	if err != nil {
		h.logger.WarnContext(ctx, "team blame failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, blameToDTO(report))
}

func (h *Handler) WarmScoreCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "WarmScoreCache")
	defer span.End()

	result, err := h.seasonService.Warm(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "warm score cache failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, warmDTO{
		Season:    result.Season,
		Weeks:     result.Weeks,
		Cacheable: result.Cacheable,
	})
}
