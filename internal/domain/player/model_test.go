package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerValidate(t *testing.T) {
	valid := Player{ID: "p1", TeamID: "t1", Name: "Rafi", JerseyNumber: 9, Position: PositionForward}

	tests := []struct {
		name    string
		mutate  func(*Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Player) {}},
		{name: "jersey lower bound", mutate: func(p *Player) { p.JerseyNumber = 1 }},
		{name: "jersey upper bound", mutate: func(p *Player) { p.JerseyNumber = 99 }},
		{name: "jersey zero", mutate: func(p *Player) { p.JerseyNumber = 0 }, wantErr: true},
		{name: "jersey too high", mutate: func(p *Player) { p.JerseyNumber = 100 }, wantErr: true},
		{name: "unknown position", mutate: func(p *Player) { p.Position = "striker" }, wantErr: true},
		{name: "missing team", mutate: func(p *Player) { p.TeamID = "" }, wantErr: true},
		{name: "bad photo url", mutate: func(p *Player) { p.PhotoURL = "photo.jpg" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
