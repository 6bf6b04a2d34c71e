package team

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrDuplicateName = errors.New("team name already exists")
	ErrInUse         = errors.New("team is referenced by matches")
)

// Team is one participant of the tournament.
type Team struct {
	ID      string
	Name    string
	LogoURL string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.LogoURL != "" && !IsAbsoluteHTTPURL(t.LogoURL) {
		return fmt.Errorf("team logo url must be an absolute http(s) url")
	}

	return nil
}

// IsAbsoluteHTTPURL is shared with player photo validation.
func IsAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Index maps teams by id.
func Index(teams []Team) map[string]Team {
	out := make(map[string]Team, len(teams))
	for _, t := range teams {
		out[t.ID] = t
	}
	return out
}
