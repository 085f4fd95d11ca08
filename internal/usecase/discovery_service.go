package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/platform/logging"
)

// FixtureFetcher lists scheduled fixtures for a single calendar date.
type FixtureFetcher interface {
	FetchFixtures(ctx context.Context, date string, timezone string) ([]fixture.Fixture, error)
}

type DiscoveryService struct {
	fetcher  FixtureFetcher
	location *time.Location
	allowed  map[int64]struct{}
	logger   *logging.Logger
}

func NewDiscoveryService(fetcher FixtureFetcher, location *time.Location, allowed map[int64]struct{}, logger *logging.Logger) *DiscoveryService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DiscoveryService{
		fetcher:  fetcher,
		location: location,
		allowed:  allowed,
		logger:   logger,
	}
}

// Discover collects not-started fixtures for today in the configured
// timezone; includeTomorrow widens the sweep by one day for the report
// command. Dates are fetched concurrently and a date whose fetch fails
// contributes nothing instead of failing the whole sweep.
func (s *DiscoveryService) Discover(ctx context.Context, includeTomorrow bool) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiscoveryService.Discover")
	defer span.End()

	now := time.Now().In(s.location)
	dates := []string{now.Format("2006-01-02")}
	if includeTomorrow {
		dates = append(dates, now.AddDate(0, 0, 1).Format("2006-01-02"))
	}

	results := make([][]fixture.Fixture, len(dates))
	var wg conc.WaitGroup
	for i, date := range dates {
		i, date := i, date
		wg.Go(func() {
			fixtures, err := s.fetcher.FetchFixtures(ctx, date, s.location.String())
			if err != nil {
				s.logger.WarnContext(ctx, "fixture sweep skipped date", "date", date, "error", err)
				return
			}
			results[i] = fixtures
		})
	}
	wg.Wait()

	merged := make([]fixture.Fixture, 0, len(results[0]))
	seen := make(map[int64]struct{})
	for _, batch := range results {
		for _, f := range batch {
			if _, dup := seen[f.ID]; dup {
				continue
			}
			seen[f.ID] = struct{}{}
			merged = append(merged, f)
		}
	}

	if len(s.allowed) > 0 {
		merged = s.filterAllowed(merged)
	}
	return merged, nil
}

func (s *DiscoveryService) filterAllowed(fixtures []fixture.Fixture) []fixture.Fixture {
	kept := fixtures[:0]
	for _, f := range fixtures {
		if _, ok := s.allowed[f.LeagueID]; ok {
			kept = append(kept, f)
		}
	}
	return kept
}

// Leagues reduces a fixture list to its distinct leagues, ordered by id.
func (s *DiscoveryService) Leagues(fixtures []fixture.Fixture) []fixture.Fixture {
	byID := make(map[int64]fixture.Fixture, len(fixtures))
	for _, f := range fixtures {
		if _, ok := byID[f.LeagueID]; !ok {
			byID[f.LeagueID] = f
		}
	}
	leagues := make([]fixture.Fixture, 0, len(byID))
	for _, f := range byID {
		leagues = append(leagues, f)
	}
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].LeagueID < leagues[j].LeagueID })
	return leagues
}
