package fixture

import (
	"fmt"
	"strings"
	"time"
)

// StatusNotStarted is the only provider status this bot asks for.
const StatusNotStarted = "NS"

// Fixture represents one scheduled match as returned by the provider.
// Immutable once discovered.
type Fixture struct {
	ID         int64
	LeagueID   int64
	LeagueName string
	Country    string
	HomeTeam   string
	AwayTeam   string
	KickoffAt  string // provider timestamp, ISO-8601 UTC, kept raw until rendering
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.LeagueID <= 0 {
		return fmt.Errorf("fixture league id is required")
	}
	return nil
}

// LeagueLabel is the human label used for keyboard buttons and captions.
func (f Fixture) LeagueLabel() string {
	name := strings.TrimSpace(f.LeagueName)
	country := strings.TrimSpace(f.Country)
	if country == "" {
		return name
	}
	return name + " (" + country + ")"
}

// ParseKickoff converts the raw provider timestamp into the given zone.
// The ok result is false when the raw value does not parse; callers fall
// back to the raw string in that case.
func (f Fixture) ParseKickoff(loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(f.KickoffAt)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			if loc != nil {
				return parsed.In(loc), true
			}
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
