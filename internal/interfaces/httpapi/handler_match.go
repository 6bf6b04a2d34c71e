package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter := match.Filter{
		Status: match.Status(strings.ToLower(strings.TrimSpace(query.Get("status")))),
		TeamID: strings.TrimSpace(query.Get("team_id")),
	}
	items, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "status", filter.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) ListMatchesGrouped(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesGrouped")
	defer span.End()

	groups, err := h.matchService.Grouped(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "group matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchGroupsToDTO(groups))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req matchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, matchInput(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "home_team_id", req.HomeTeamID, "away_team_id", req.AwayTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req matchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.UpdateDetails(ctx, matchID, matchInput(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	h.transitionMatch(w, r, "httpapi.Handler.StartMatch", h.matchService.Start)
}

func (h *Handler) PostponeMatch(w http.ResponseWriter, r *http.Request) {
	h.transitionMatch(w, r, "httpapi.Handler.PostponeMatch", h.matchService.Postpone)
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	h.transitionMatch(w, r, "httpapi.Handler.CancelMatch", h.matchService.Cancel)
}

func (h *Handler) ReopenMatch(w http.ResponseWriter, r *http.Request) {
	h.transitionMatch(w, r, "httpapi.Handler.ReopenMatch", h.matchService.Reopen)
}

func (h *Handler) transitionMatch(w http.ResponseWriter, r *http.Request, spanName string, fn func(context.Context, string) (match.Match, error)) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := fn(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "match transition failed", "operation", spanName, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req finishMatchRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	item, err := h.matchService.Finish(ctx, matchID, usecase.FinishInput{HomeScore: req.HomeScore, AwayScore: req.AwayScore})
	if err != nil {
		h.logger.WarnContext(ctx, "finish match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RescheduleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescheduleMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req rescheduleMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Reschedule(ctx, matchID, req.ScheduledAt)
	if err != nil {
		h.logger.WarnContext(ctx, "reschedule match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGoal")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordGoalRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, event, err := h.matchService.RecordGoal(ctx, matchID, usecase.GoalInput{PlayerID: req.PlayerID, Count: req.Count})
	if err != nil {
		h.logger.WarnContext(ctx, "record goal failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordGoalResponseDTO{Match: matchToDTO(item), Goal: goalEventToDTO(event)})
}

func matchInput(req matchRequest) usecase.MatchInput {
	return usecase.MatchInput{
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		ScheduledAt: req.ScheduledAt,
		Venue:       req.Venue,
		Stage:       match.Stage(req.Stage),
	}
}
