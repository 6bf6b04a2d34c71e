package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/resilience"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrFailedPrecondition    = errors.New("failed precondition")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify tags domain and repository errors with the matching use case sentinel.
// The original error stays in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, match.ErrInvalidTransition), errors.Is(err, match.ErrNotEditable):
		return fmt.Errorf("%w: %w", ErrFailedPrecondition, err)
	case errors.Is(err, match.ErrInvalidScore), errors.Is(err, match.ErrSameTeams), errors.Is(err, match.ErrInvalidDetails):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, team.ErrDuplicateName), errors.Is(err, team.ErrInUse), errors.Is(err, player.ErrDuplicateJersey),
		errors.Is(err, match.ErrStale):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, standing.ErrDanglingReference):
		return fmt.Errorf("%w: %w", ErrFailedPrecondition, err)
	case errors.Is(err, resilience.ErrCircuitOpen):
		return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	default:
		return err
	}
}
