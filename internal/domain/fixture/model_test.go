package fixture

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Fixture{ID: 1, LeagueID: 10}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid fixture rejected: %v", err)
	}

	if err := (Fixture{LeagueID: 10}).Validate(); err == nil {
		t.Fatal("missing fixture id accepted")
	}
	if err := (Fixture{ID: 1}).Validate(); err == nil {
		t.Fatal("missing league id accepted")
	}
}

func TestLeagueLabel(t *testing.T) {
	t.Parallel()

	f := Fixture{LeagueName: "Premier League", Country: "England"}
	if got := f.LeagueLabel(); got != "Premier League (England)" {
		t.Fatalf("label: %q", got)
	}

	f.Country = "  "
	if got := f.LeagueLabel(); got != "Premier League" {
		t.Fatalf("label without country: %q", got)
	}
}

func TestParseKickoff(t *testing.T) {
	t.Parallel()

	makassar := time.FixedZone("WITA", 8*3600)

	f := Fixture{KickoffAt: "2026-08-31T12:00:00+00:00"}
	at, ok := f.ParseKickoff(makassar)
	if !ok {
		t.Fatal("RFC3339 timestamp did not parse")
	}
	if got := at.Format("2006-01-02 15:04"); got != "2026-08-31 20:00" {
		t.Fatalf("localized kickoff: %q", got)
	}

	for _, raw := range []string{"", "soon", "31/08/2026"} {
		if _, ok := (Fixture{KickoffAt: raw}).ParseKickoff(makassar); ok {
			t.Fatalf("raw %q should not parse", raw)
		}
	}
}
