package usecase

import (
	"context"
	"time"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/domain/prediction"
	"github.com/andikarh/parlaybot/internal/platform/logging"
	"github.com/andikarh/parlaybot/internal/platform/workpool"
)

// ExternalPrediction is the provider's prediction payload for one fixture,
// reduced to the fields the report needs.
type ExternalPrediction struct {
	Advice     string
	LeagueName string
	HomeTeam   string
	AwayTeam   string
	HomeForm   string
	AwayForm   string
	HomeAtt    string
	HomeDef    string
	AwayAtt    string
	AwayDef    string
	HomePlayed int
	HomeWins   int
	AwayPlayed int
	AwayWins   int
}

type PredictionProvider interface {
	FetchPrediction(ctx context.Context, fixtureID int64) (ExternalPrediction, error)
}

const (
	minPredictionWorkers = 1
	maxPredictionWorkers = 5
)

type PredictionService struct {
	provider PredictionProvider
	location *time.Location
	workers  int
	logger   *logging.Logger
}

func NewPredictionService(provider PredictionProvider, location *time.Location, workers int, logger *logging.Logger) *PredictionService {
	if location == nil {
		location = time.UTC
	}
	if workers < minPredictionWorkers {
		workers = minPredictionWorkers
	}
	if workers > maxPredictionWorkers {
		workers = maxPredictionWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PredictionService{
		provider: provider,
		location: location,
		workers:  workers,
		logger:   logger,
	}
}

// Collect fetches predictions for every fixture through a bounded worker
// pool and normalizes them into report records. Records come back in the
// same order as the input fixtures; a fixture whose fetch fails is logged
// and dropped without touching its neighbours.
func (s *PredictionService) Collect(ctx context.Context, fixtures []fixture.Fixture) ([]prediction.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Collect")
	defer span.End()

	if len(fixtures) == 0 {
		return nil, nil
	}

	results, itemErrs, err := workpool.Map(ctx, s.workers, fixtures, func(ctx context.Context, f fixture.Fixture) (prediction.Record, error) {
		pred, err := s.provider.FetchPrediction(ctx, f.ID)
		if err != nil {
			return prediction.Record{}, err
		}
		return s.normalize(f, pred), nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]prediction.Record, 0, len(fixtures))
	for i := range fixtures {
		if itemErrs[i] != nil {
			s.logger.WarnContext(ctx, "prediction unavailable",
				"fixture_id", fixtures[i].ID,
				"home", fixtures[i].HomeTeam,
				"away", fixtures[i].AwayTeam,
				"error", itemErrs[i])
			continue
		}
		records = append(records, results[i])
	}
	return records, nil
}

func (s *PredictionService) normalize(f fixture.Fixture, pred ExternalPrediction) prediction.Record {
	return prediction.Record{
		Date:     s.localKickoff(f),
		League:   f.LeagueLabel(),
		HomeTeam: f.HomeTeam,
		AwayTeam: f.AwayTeam,
		Advice:   pred.Advice,
		HomeForm: prediction.TruncateForm(pred.HomeForm),
		AwayForm: prediction.TruncateForm(pred.AwayForm),
		HomeLast5: prediction.SideStats{
			Attack:  pred.HomeAtt,
			Defense: pred.HomeDef,
		},
		AwayLast5: prediction.SideStats{
			Attack:  pred.AwayAtt,
			Defense: pred.AwayDef,
		},
		HomeStrength: prediction.Strength(pred.HomeWins, pred.HomePlayed),
		AwayStrength: prediction.Strength(pred.AwayWins, pred.AwayPlayed),
	}
}

// localKickoff renders the kickoff instant in the report timezone. An
// unparseable timestamp falls back to the provider's raw string.
func (s *PredictionService) localKickoff(f fixture.Fixture) string {
	at, ok := f.ParseKickoff(s.location)
	if !ok {
		return f.KickoffAt
	}
	return at.In(s.location).Format("2006-01-02 15:04")
}
