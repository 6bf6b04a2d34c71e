package postgres

import (
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
)

type playerTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	TeamID       string    `db:"team_public_id"`
	Name         string    `db:"name"`
	JerseyNumber int       `db:"jersey_number"`
	Position     string    `db:"position"`
	PhotoURL     string    `db:"photo_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID     string `db:"public_id"`
	TeamID       string `db:"team_public_id"`
	Name         string `db:"name"`
	JerseyNumber int    `db:"jersey_number"`
	Position     string `db:"position"`
	PhotoURL     string `db:"photo_url"`
}

type playerUpdateModel struct {
	PublicID     string    `db:"public_id,key"`
	TeamID       string    `db:"team_public_id"`
	Name         string    `db:"name"`
	JerseyNumber int       `db:"jersey_number"`
	Position     string    `db:"position"`
	PhotoURL     string    `db:"photo_url"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.PublicID,
		TeamID:       m.TeamID,
		Name:         m.Name,
		JerseyNumber: m.JerseyNumber,
		Position:     player.Position(m.Position),
		PhotoURL:     m.PhotoURL,
	}
}
