// Package espn is the scoreboard and boxscore provider: typed reads of
// ESPN's public site API with an optional short-TTL Redis snapshot
// cache in front of the scoreboard calls.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// sportPaths maps league keys to ESPN sport paths. Soccer fans out over
// the configured competition list instead.
var sportPaths = map[string]string{
	"NFL": "football/nfl",
	"NBA": "basketball/nba",
	"MLB": "baseball/mlb",
	"NHL": "hockey/nhl",
	"UFC": "mma/ufc",
}

// DefaultSoccerCompetitions is the fan-out used when the config names
// none.
var DefaultSoccerCompetitions = []string{"eng.1", "esp.1", "ita.1", "ger.1", "usa.1"}

// Client reads scoreboards and summaries. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	base       string
	soccer     []string
	cache      *SnapshotCache
}

type Option func(*Client)

// WithBaseURL points the client at a different API root, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = base }
}

// WithSoccerCompetitions sets the competition paths aggregated into the
// SOCCER scoreboard.
func WithSoccerCompetitions(comps []string) Option {
	return func(c *Client) {
		if len(comps) > 0 {
			c.soccer = comps
		}
	}
}

// WithSnapshotCache puts a Redis-backed scoreboard cache in front of
// the API. Cache failures degrade to direct fetches.
func WithSnapshotCache(cache *SnapshotCache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  "Mozilla/5.0 (compatible; BetTrackingBot/1.0)",
		base:       BaseURL,
		soccer:     DefaultSoccerCompetitions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scoreboard fetches today's events for a league. SOCCER aggregates
// every configured competition; a competition that errors is skipped so
// one dead feed does not blank the whole league.
func (c *Client) Scoreboard(ctx context.Context, league string) (*Scoreboard, error) {
	if league == "SOCCER" {
		merged := &Scoreboard{}
		var firstErr error
		for _, comp := range c.soccer {
			sb, err := c.scoreboardPath(ctx, "soccer/"+comp)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			merged.Events = append(merged.Events, sb.Events...)
		}
		if len(merged.Events) == 0 && firstErr != nil {
			return nil, firstErr
		}
		return merged, nil
	}

	path, ok := sportPaths[league]
	if !ok {
		return nil, fmt.Errorf("unknown league %q", league)
	}
	return c.scoreboardPath(ctx, path)
}

func (c *Client) scoreboardPath(ctx context.Context, sportPath string) (*Scoreboard, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", c.base, sportPath)

	if c.cache != nil {
		if sb, ok := c.cache.GetScoreboard(ctx, sportPath); ok {
			return sb, nil
		}
	}

	var sb Scoreboard
	if err := c.fetch(ctx, url, &sb); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.PutScoreboard(ctx, sportPath, &sb)
	}
	return &sb, nil
}

// Summary fetches the boxscore summary for one event.
func (c *Client) Summary(ctx context.Context, league, eventID string) (*Summary, error) {
	path, ok := sportPaths[league]
	if !ok && league != "SOCCER" {
		return nil, fmt.Errorf("unknown league %q", league)
	}
	if league == "SOCCER" {
		// Summaries need a concrete competition; try each until one
		// knows the event.
		var firstErr error
		for _, comp := range c.soccer {
			var sum Summary
			url := fmt.Sprintf("%s/soccer/%s/summary?event=%s", c.base, comp, eventID)
			if err := c.fetch(ctx, url, &sum); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			return &sum, nil
		}
		return nil, firstErr
	}

	var sum Summary
	url := fmt.Sprintf("%s/%s/summary?event=%s", c.base, path, eventID)
	if err := c.fetch(ctx, url, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

func (c *Client) fetch(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ESPN API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
