package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/usecase"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	includeAll := false
	if raw := strings.TrimSpace(r.URL.Query().Get("all_teams")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, invalidQuery("all_teams", raw))
			return
		}
		includeAll = v
	}

	view, err := h.standingService.Standings(ctx, includeAll)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(view))
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	view, err := h.standingService.TopScorers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, topScorersToDTO(view))
}

func (h *Handler) RefreshReadModel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshReadModel")
	defer span.End()

	rm, err := h.readModel.Refresh(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh read model failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, readModelToDTO(rm))
}

func invalidQuery(name, value string) error {
	return fmt.Errorf("%w: invalid query parameter %s=%q", usecase.ErrInvalidInput, name, value)
}
