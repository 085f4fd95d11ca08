package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
)

func rawKickoff(f fixture.Fixture) string { return f.KickoffAt }

func TestScheduleChunks_KeepsOrderAndFormat(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: 1, LeagueID: 10, LeagueName: "Premier League", Country: "England", HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffAt: "2026-08-31 20:00"},
		{ID: 2, LeagueID: 20, LeagueName: "La Liga", Country: "Spain", HomeTeam: "Real", AwayTeam: "Barca", KickoffAt: "2026-08-31 22:00"},
	}

	chunks := scheduleChunks(fixtures, rawKickoff)
	require.Len(t, chunks, 1)
	lines := strings.Split(strings.TrimRight(chunks[0], "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "2026-08-31 20:00 — Premier League (England): Arsenal vs Chelsea", lines[0])
	require.Equal(t, "2026-08-31 22:00 — La Liga (Spain): Real vs Barca", lines[1])
}

func TestScheduleChunks_SplitsAtSizeLimit(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 200)
	fixtures := make([]fixture.Fixture, 30)
	for i := range fixtures {
		fixtures[i] = fixture.Fixture{
			ID: int64(i + 1), LeagueID: 10,
			LeagueName: long, Country: "England",
			HomeTeam: long, AwayTeam: long, KickoffAt: "soon",
		}
	}

	chunks := scheduleChunks(fixtures, rawKickoff)
	require.Greater(t, len(chunks), 1)
	total := 0
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), maxMessageLen+len(long)*3+64, "no chunk wildly over the limit")
		total += strings.Count(chunk, "\n")
	}
	require.Equal(t, 30, total, "every fixture ends up in exactly one chunk")
}

func TestScheduleChunks_Empty(t *testing.T) {
	t.Parallel()

	require.Empty(t, scheduleChunks(nil, rawKickoff))
}
