package postgres

import (
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	LogoURL   string    `db:"logo_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	LogoURL  string `db:"logo_url"`
}

type teamUpdateModel struct {
	PublicID  string    `db:"public_id,key"`
	Name      string    `db:"name"`
	LogoURL   string    `db:"logo_url"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:      m.PublicID,
		Name:    m.Name,
		LogoURL: m.LogoURL,
	}
}
