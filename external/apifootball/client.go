package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/platform/logging"
	"github.com/andikarh/parlaybot/internal/platform/resilience"
	"github.com/andikarh/parlaybot/internal/usecase"
)

const (
	defaultBaseURL  = "https://v3.football.api-sports.io"
	apiKeyHeader    = "x-apisports-key"
	maxResponseSize = 6 << 20
)

// ErrNoData marks a request whose retry budget is exhausted or whose
// envelope came back empty. Callers treat it as an empty result, never as
// a user-facing failure.
var ErrNoData = crerr.New("no data from provider")

var errTransient = crerr.New("provider transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Retry      resilience.RetryPolicy
	Logger     *logging.Logger
}

// Client talks to the api-sports v3 football API. Every request runs
// through the injected retry policy; identical in-flight prediction
// requests are collapsed through singleflight.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retry      resilience.RetryPolicy
	logger     *logging.Logger
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		retry:      resilience.NormalizeRetryPolicy(cfg.Retry),
		logger:     logger,
	}
}

// FetchFixtures lists not-yet-started fixtures for one calendar date in
// the given timezone. An empty provider response yields an empty slice.
func (c *Client) FetchFixtures(ctx context.Context, date string, timezone string) ([]fixture.Fixture, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("status", fixture.StatusNotStarted)
	query.Set("timezone", timezone)

	var envelope fixturesEnvelope
	if err := c.getJSON(ctx, "/fixtures", query, &envelope); err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		f := fixture.Fixture{
			ID:         item.Fixture.ID,
			LeagueID:   item.League.ID,
			LeagueName: item.League.Name,
			Country:    item.League.Country,
			HomeTeam:   item.Teams.Home.Name,
			AwayTeam:   item.Teams.Away.Name,
			KickoffAt:  item.Fixture.Date,
		}
		if err := f.Validate(); err != nil {
			c.logger.WarnContext(ctx, "skip malformed fixture row", "date", date, "error", err)
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// FetchPrediction retrieves the prediction for one fixture. A missing
// prediction entry or an exhausted retry budget returns ErrNoData.
func (c *Client) FetchPrediction(ctx context.Context, fixtureID int64) (usecase.ExternalPrediction, error) {
	key := "predictions:" + strconv.FormatInt(fixtureID, 10)
	out, err, _ := c.flight.Do(key, func() (any, error) {
		return c.fetchPrediction(ctx, fixtureID)
	})
	if err != nil {
		return usecase.ExternalPrediction{}, err
	}
	pred, ok := out.(usecase.ExternalPrediction)
	if !ok {
		return usecase.ExternalPrediction{}, crerr.Newf("unexpected prediction payload type %T", out)
	}
	return pred, nil
}

func (c *Client) fetchPrediction(ctx context.Context, fixtureID int64) (usecase.ExternalPrediction, error) {
	query := url.Values{}
	query.Set("fixture", strconv.FormatInt(fixtureID, 10))

	var envelope predictionsEnvelope
	if err := c.getJSON(ctx, "/predictions", query, &envelope); err != nil {
		return usecase.ExternalPrediction{}, err
	}
	if len(envelope.Response) == 0 {
		return usecase.ExternalPrediction{}, ErrNoData
	}

	item := envelope.Response[0]
	return usecase.ExternalPrediction{
		Advice:     item.Predictions.Advice,
		LeagueName: item.League.Name,
		HomeTeam:   item.Teams.Home.Name,
		AwayTeam:   item.Teams.Away.Name,
		HomeForm:   item.Teams.Home.League.Form,
		AwayForm:   item.Teams.Away.League.Form,
		HomeAtt:    item.Teams.Home.Last5.Att,
		HomeDef:    item.Teams.Home.Last5.Def,
		AwayAtt:    item.Teams.Away.Last5.Att,
		AwayDef:    item.Teams.Away.Last5.Def,
		HomePlayed: item.Teams.Home.League.Fixtures.Played.Home,
		HomeWins:   item.Teams.Home.League.Fixtures.Wins.Home,
		AwayPlayed: item.Teams.Away.League.Fixtures.Played.Away,
		AwayWins:   item.Teams.Away.League.Fixtures.Wins.Away,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

// executeRequest performs one GET under the retry policy. Transport errors
// and retryable statuses consume attempts; an exhausted budget degrades to
// ErrNoData so one bad fixture never fails a whole report run.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set(apiKeyHeader, c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				lastErr = fmt.Errorf("%w: provider status=%d", errTransient, resp.StatusCode)
				if !c.retry.ShouldRetryStatus(resp.StatusCode) {
					c.logger.WarnContext(ctx, "provider request rejected", "url", fullURL, "status", resp.StatusCode)
					return nil, ErrNoData
				}
			}
		}

		if attempt == c.retry.MaxAttempts {
			break
		}
		if err := c.retry.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.logger.WarnContext(ctx, "provider retry budget exhausted", "url", fullURL, "attempts", c.retry.MaxAttempts, "error", lastErr)
	return nil, ErrNoData
}

func (c *Client) sanitize(value string) string {
	if c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}
