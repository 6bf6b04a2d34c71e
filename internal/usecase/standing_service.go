package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
)

type StandingsView struct {
	Version uint64
	Rows    []standing.TeamStanding
}

type TopScorersView struct {
	Version uint64
	Entries []standing.ScorerEntry
	Summary standing.ScorerSummary
}

// StandingService answers table and scorer queries from the read model.
type StandingService struct {
	readModel ReadModelReader
}

func NewStandingService(readModel ReadModelReader) *StandingService {
	return &StandingService{readModel: readModel}
}

func (s *StandingService) Standings(ctx context.Context, includeAllTeams bool) (StandingsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Standings")
	defer span.End()

	rm, err := s.readModel.Current(ctx)
	if err != nil {
		return StandingsView{}, fmt.Errorf("load read model: %w", err)
	}
	rows := rm.Standings
	if includeAllTeams {
		rows = rm.AllTeamStandings
	}
	return StandingsView{Version: rm.Version, Rows: rows}, nil
}

func (s *StandingService) TopScorers(ctx context.Context) (TopScorersView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.TopScorers")
	defer span.End()

	rm, err := s.readModel.Current(ctx)
	if err != nil {
		return TopScorersView{}, fmt.Errorf("load read model: %w", err)
	}
	return TopScorersView{Version: rm.Version, Entries: rm.TopScorers, Summary: rm.ScorerSummary}, nil
}
