package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	qb "github.com/riskibarqy/tournament-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	return selectPlayers(ctx, r.db, filter)
}

func selectPlayers(ctx context.Context, q sqlx.QueryerContext, filter player.Filter) ([]player.Player, error) {
	var conditions []qb.Condition
	if filter.TeamID != "" {
		conditions = append(conditions, qb.Eq("team_public_id", filter.TeamID))
	}

	query, args, err := qb.Select("*").From("players").
		Where(conditions...).
		OrderBy("team_public_id", "jersey_number", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		PublicID:     p.ID,
		TeamID:       p.TeamID,
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		PhotoURL:     p.PhotoURL,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, constraintPlayerJersey) {
			return fmt.Errorf("%w: team=%s jersey=%d", player.ErrDuplicateJersey, p.TeamID, p.JerseyNumber)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.UpdateModel("players", playerUpdateModel{
		PublicID:     p.ID,
		TeamID:       p.TeamID,
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		PhotoURL:     p.PhotoURL,
		UpdatedAt:    time.Now().UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, constraintPlayerJersey) {
			return fmt.Errorf("%w: team=%s jersey=%d", player.ErrDuplicateJersey, p.TeamID, p.JerseyNumber)
		}
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update player: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update player: not found")
	}
	return nil
}
