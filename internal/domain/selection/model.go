package selection

import (
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
)

type State string

const (
	StateIdle          State = "idle"
	StateLeaguesListed State = "leagues_listed"
	StateConfirmed     State = "confirmed"
)

var ErrEmptySelection = crerr.New("no league selected")

// Session tracks one chat's league selection between the fixture listing
// and the confirmed prediction run. Not safe for concurrent use; the
// session service serializes access.
type Session struct {
	ChatID   int64
	State    State
	Fixtures []fixture.Fixture
	Selected map[int64]struct{}
	// FixtureIDs is resolved on Confirm and is always a subset of Fixtures.
	FixtureIDs []int64
}

func NewSession(chatID int64) *Session {
	return &Session{
		ChatID:   chatID,
		State:    StateIdle,
		Selected: make(map[int64]struct{}),
	}
}

// Start replaces any earlier selection with a freshly discovered fixture
// set and moves to leagues_listed. Prior toggles are discarded.
func (s *Session) Start(fixtures []fixture.Fixture) {
	s.Fixtures = fixtures
	s.Selected = make(map[int64]struct{})
	s.FixtureIDs = nil
	s.State = StateLeaguesListed
}

// Toggle flips membership of one league id. Toggling twice restores the
// previous set. Fixture ids stay untouched until Confirm.
func (s *Session) Toggle(leagueID int64) {
	if s.Selected == nil {
		s.Selected = make(map[int64]struct{})
	}
	if _, ok := s.Selected[leagueID]; ok {
		delete(s.Selected, leagueID)
		return
	}
	s.Selected[leagueID] = struct{}{}
}

func (s *Session) IsSelected(leagueID int64) bool {
	_, ok := s.Selected[leagueID]
	return ok
}

// HasLeague reports whether any discovered fixture belongs to the league.
func (s *Session) HasLeague(leagueID int64) bool {
	for _, f := range s.Fixtures {
		if f.LeagueID == leagueID {
			return true
		}
	}
	return false
}

// Confirm resolves the fixture id list from the toggled leagues and moves
// to confirmed. An empty selection is rejected and the state is unchanged.
func (s *Session) Confirm() error {
	if len(s.Selected) == 0 {
		return ErrEmptySelection
	}
	ids := make([]int64, 0, len(s.Fixtures))
	for _, f := range s.Fixtures {
		if _, ok := s.Selected[f.LeagueID]; ok {
			ids = append(ids, f.ID)
		}
	}
	s.FixtureIDs = ids
	s.State = StateConfirmed
	return nil
}

// ConfirmedFixtures returns the discovered fixtures matching the confirmed
// id list, preserving discovery order.
func (s *Session) ConfirmedFixtures() []fixture.Fixture {
	if len(s.FixtureIDs) == 0 {
		return nil
	}
	wanted := make(map[int64]struct{}, len(s.FixtureIDs))
	for _, id := range s.FixtureIDs {
		wanted[id] = struct{}{}
	}
	out := make([]fixture.Fixture, 0, len(s.FixtureIDs))
	for _, f := range s.Fixtures {
		if _, ok := wanted[f.ID]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Leagues lists the distinct leagues of the discovered fixtures, sorted by
// league id so the keyboard layout is stable across re-renders.
func (s *Session) Leagues() []fixture.Fixture {
	seen := make(map[int64]struct{}, len(s.Fixtures))
	out := make([]fixture.Fixture, 0, len(s.Fixtures))
	for _, f := range s.Fixtures {
		if _, ok := seen[f.LeagueID]; ok {
			continue
		}
		seen[f.LeagueID] = struct{}{}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LeagueID < out[j].LeagueID })
	return out
}

// SelectedLabels returns the labels of the toggled leagues in id order.
func (s *Session) SelectedLabels() []string {
	out := make([]string, 0, len(s.Selected))
	for _, f := range s.Leagues() {
		if s.IsSelected(f.LeagueID) {
			out = append(out, f.LeagueLabel())
		}
	}
	return out
}

// Reset clears everything back to idle. Called after report delivery.
func (s *Session) Reset() {
	s.Fixtures = nil
	s.Selected = make(map[int64]struct{})
	s.FixtureIDs = nil
	s.State = StateIdle
}
