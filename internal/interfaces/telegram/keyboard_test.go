package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/domain/selection"
)

func sessionWith(t *testing.T, fixtures ...fixture.Fixture) *selection.Session {
	t.Helper()
	sess := selection.NewSession(1)
	sess.Start(fixtures)
	return sess
}

func TestLeagueKeyboard_OneRowPerLeaguePlusConfirm(t *testing.T) {
	t.Parallel()

	sess := sessionWith(t,
		fixture.Fixture{ID: 1, LeagueID: 20, LeagueName: "La Liga", Country: "Spain", HomeTeam: "A", AwayTeam: "B", KickoffAt: "x"},
		fixture.Fixture{ID: 2, LeagueID: 10, LeagueName: "Premier League", Country: "England", HomeTeam: "C", AwayTeam: "D", KickoffAt: "x"},
		fixture.Fixture{ID: 3, LeagueID: 10, LeagueName: "Premier League", Country: "England", HomeTeam: "E", AwayTeam: "F", KickoffAt: "x"},
	)

	markup := leagueKeyboard(sess)
	require.Len(t, markup.InlineKeyboard, 3, "two leagues, one confirm row")

	// sorted by league id, so the Premier League row comes first
	first := markup.InlineKeyboard[0][0]
	require.Equal(t, "Premier League (England)", first.Text)
	require.Equal(t, "toggle:10", *first.CallbackData)

	last := markup.InlineKeyboard[2][0]
	require.Equal(t, doneButtonLabel, last.Text)
	require.Equal(t, callbackDone, *last.CallbackData)
}

func TestLeagueKeyboard_SelectedLeagueGetsCheckmark(t *testing.T) {
	t.Parallel()

	sess := sessionWith(t,
		fixture.Fixture{ID: 1, LeagueID: 10, LeagueName: "Premier League", Country: "England", HomeTeam: "A", AwayTeam: "B", KickoffAt: "x"},
	)
	sess.Toggle(10)

	markup := leagueKeyboard(sess)
	require.Equal(t, "✅ Premier League (England)", markup.InlineKeyboard[0][0].Text)

	sess.Toggle(10)
	markup = leagueKeyboard(sess)
	require.Equal(t, "Premier League (England)", markup.InlineKeyboard[0][0].Text)
}

func TestParseToggle(t *testing.T) {
	t.Parallel()

	id, ok := parseToggle("toggle:42")
	require.True(t, ok)
	require.Equal(t, int64(42), id)

	for _, data := range []string{"done", "toggle:", "toggle:abc", "toggle:-1", "other:42", ""} {
		_, ok := parseToggle(data)
		require.False(t, ok, "payload %q must not parse", data)
	}
}
