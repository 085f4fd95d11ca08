package selection

import (
	"errors"
	"testing"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
)

func sampleFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{ID: 1, LeagueID: 10, LeagueName: "Premier League", Country: "England"},
		{ID: 2, LeagueID: 20, LeagueName: "La Liga", Country: "Spain"},
		{ID: 3, LeagueID: 10, LeagueName: "Premier League", Country: "England"},
	}
}

func TestSession_ToggleIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewSession(7)
	s.Start(sampleFixtures())

	s.Toggle(10)
	if !s.IsSelected(10) {
		t.Fatalf("league 10 should be selected after one toggle")
	}
	s.Toggle(10)
	if s.IsSelected(10) {
		t.Fatalf("league 10 should be unselected after two toggles")
	}
	if len(s.Selected) != 0 {
		t.Fatalf("selected set should be empty, got %d entries", len(s.Selected))
	}
}

func TestSession_HasLeague(t *testing.T) {
	t.Parallel()

	s := NewSession(7)
	s.Start(sampleFixtures())

	if !s.HasLeague(10) || !s.HasLeague(20) {
		t.Fatalf("discovered leagues should be reported present")
	}
	if s.HasLeague(999) {
		t.Fatalf("unknown league should not be reported present")
	}
}

func TestSession_ConfirmEmptySelectionRejected(t *testing.T) {
	t.Parallel()

	s := NewSession(7)
	s.Start(sampleFixtures())

	if err := s.Confirm(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if s.State != StateLeaguesListed {
		t.Fatalf("state should stay leagues_listed, got %s", s.State)
	}
}

func TestSession_ConfirmResolvesFixtureSubset(t *testing.T) {
	t.Parallel()

	s := NewSession(7)
	s.Start(sampleFixtures())
	s.Toggle(10)

	if err := s.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if s.State != StateConfirmed {
		t.Fatalf("expected confirmed state, got %s", s.State)
	}
	if got, want := len(s.FixtureIDs), 2; got != want {
		t.Fatalf("fixture ids: got %d, want %d", got, want)
	}
	if s.FixtureIDs[0] != 1 || s.FixtureIDs[1] != 3 {
		t.Fatalf("fixture ids should preserve discovery order, got %v", s.FixtureIDs)
	}

	confirmed := s.ConfirmedFixtures()
	if len(confirmed) != 2 || confirmed[0].ID != 1 || confirmed[1].ID != 3 {
		t.Fatalf("unexpected confirmed fixtures: %+v", confirmed)
	}
}

func TestSession_StartDiscardsPriorSelection(t *testing.T) {
	t.Parallel()

	s := NewSession(7)
	s.Start(sampleFixtures())
	s.Toggle(10)
	if err := s.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	s.Start([]fixture.Fixture{{ID: 9, LeagueID: 30, LeagueName: "Serie A", Country: "Italy"}})
	if s.State != StateLeaguesListed {
		t.Fatalf("re-entry should restart from leagues_listed, got %s", s.State)
	}
	if len(s.Selected) != 0 || len(s.FixtureIDs) != 0 {
		t.Fatalf("re-entry should discard prior selection")
	}
}

func TestSession_LeaguesDeduplicatedAndSorted(t *testing.T) {
	t.Parallel()

	s := NewSession(7)
	s.Start([]fixture.Fixture{
		{ID: 1, LeagueID: 20, LeagueName: "La Liga", Country: "Spain"},
		{ID: 2, LeagueID: 10, LeagueName: "Premier League", Country: "England"},
		{ID: 3, LeagueID: 20, LeagueName: "La Liga", Country: "Spain"},
	})

	leagues := s.Leagues()
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(leagues))
	}
	if leagues[0].LeagueID != 10 || leagues[1].LeagueID != 20 {
		t.Fatalf("leagues should be sorted by id, got %v, %v", leagues[0].LeagueID, leagues[1].LeagueID)
	}
	if got, want := leagues[0].LeagueLabel(), "Premier League (England)"; got != want {
		t.Fatalf("label: got %q, want %q", got, want)
	}
}
