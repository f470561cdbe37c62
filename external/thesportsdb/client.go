package thesportsdb

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
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/riskibarqy/pickem-pool/internal/platform/resilience"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://www.thesportsdb.com/api/v1/json"
	DefaultAPIKey   = "3"
	DefaultLeagueID = "4391"

	maxResponseBytes = 2 << 20
)

var errTransient = crerr.New("thesportsdb transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	LeagueID   string
	Timeout    time.Duration
	MaxRetries int
	// RatePerSecond caps outbound requests. Zero disables the limiter.
	RatePerSecond  float64
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads weekly NFL schedules and results from TheSportsDB.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	leagueID     string
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	leagueID := strings.TrimSpace(cfg.LeagueID)
	if leagueID == "" {
		leagueID = DefaultLeagueID
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := int(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       apiKey,
		leagueID:     leagueID,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		limiter:      limiter,
		logger:       logger.Named("thesportsdb"),
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// ListMatches returns the week's games in provider order. Playoff weeks are
// requested with the provider's round codes.
func (c *Client) ListMatches(ctx context.Context, season int, week pickem.Week) ([]pickem.Match, error) {
	if !week.Valid() {
		return nil, fmt.Errorf("%w: %d", pickem.ErrInvalidWeek, int(week))
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	query := url.Values{}
	query.Set("id", c.leagueID)
	query.Set("r", strconv.Itoa(week.ProviderRound()))
	query.Set("s", strconv.Itoa(season))

	var envelope eventsEnvelope
	if err := c.doJSON(ctx, "/eventsround.php", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch round season=%d week=%d: %w", season, int(week), err)
	}

	matches, err := matchesFromEvents(envelope.Events)
	if err != nil {
		return nil, fmt.Errorf("parse round season=%d week=%d: %w", season, int(week), err)
	}
	c.logger.DebugContext(ctx, "fetched round", "season", season, "week", int(week), "matches", len(matches))
	return matches, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + "/" + url.PathEscape(c.apiKey) + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	v, err, _ := c.flight.Do(path+"?"+query.Encode(), func() (any, error) {
		var out []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			out, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isTransient)
		if crerr.Is(execErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "thesportsdb circuit breaker rejected request", "state", c.breaker.State())
		}
		return out, execErr
	})
	if err != nil {
		return err
	}

	raw, _ := v.([]byte)
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, c.redact(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "thesportsdb request failed", "url", c.redact(fullURL), "error", lastErr)
	return nil, lastErr
}

// redact hides a private API key that is part of the request path.
func (c *Client) redact(value string) string {
	if c.apiKey == "" || c.apiKey == DefaultAPIKey {
		return value
	}
	return strings.ReplaceAll(value, "/"+c.apiKey+"/", "/REDACTED/")
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func matchesFromEvents(events []event) ([]pickem.Match, error) {
	out := make([]pickem.Match, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		id := strings.TrimSpace(ev.ID)
		if id == "" {
			return nil, fmt.Errorf("event without id: %q", ev.EventName)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		away, ok := pickem.TeamCodeFromName(ev.AwayTeam)
		if !ok {
			return nil, fmt.Errorf("event %s: unknown away team %q", id, ev.AwayTeam)
		}
		home, ok := pickem.TeamCodeFromName(ev.HomeTeam)
		if !ok {
			return nil, fmt.Errorf("event %s: unknown home team %q", id, ev.HomeTeam)
		}
		kickoff, ok := parseKickoff(ev)
		if !ok {
			return nil, fmt.Errorf("event %s: unreadable kickoff timestamp=%q date=%q time=%q", id, ev.Timestamp, ev.DateEvent, ev.Time)
		}

		m := pickem.Match{
			ID:       id,
			AwayTeam: away,
			HomeTeam: home,
			Kickoff:  kickoff,
		}
		awayScore, homeScore := ev.AwayScore.Int(), ev.HomeScore.Int()
		if awayScore != nil && homeScore != nil {
			m.AwayScore = awayScore
			m.HomeScore = homeScore
		}
		out = append(out, m)
	}
	return out, nil
}

var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseKickoff reads strTimestamp, falling back to dateEvent plus strTime.
// Values without a zone are UTC.
func parseKickoff(ev event) (time.Time, bool) {
	candidates := []string{strings.TrimSpace(ev.Timestamp)}
	if date := strings.TrimSpace(ev.DateEvent); date != "" {
		clock := strings.TrimSpace(ev.Time)
		if clock == "" {
			clock = "00:00:00"
		}
		candidates = append(candidates, date+"T"+clock)
	}

	for _, value := range candidates {
		if value == "" {
			continue
		}
		for _, layout := range kickoffLayouts {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
