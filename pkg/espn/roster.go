package espn

import (
	"context"
	"fmt"
)

// teamsResponse is the trimmed shape of the league teams endpoint.
type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team Team `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// TeamNames lists the league's current team display names, feeding the
// catalog's roster refresh.
func (c *Client) TeamNames(ctx context.Context, league string) ([]string, error) {
	path, ok := sportPaths[league]
	if !ok {
		return nil, fmt.Errorf("unknown league %q", league)
	}
	var resp teamsResponse
	url := fmt.Sprintf("%s/%s/teams", c.base, path)
	if err := c.fetch(ctx, url, &resp); err != nil {
		return nil, err
	}
	var names []string
	for _, sport := range resp.Sports {
		for _, lg := range sport.Leagues {
			for _, t := range lg.Teams {
				if t.Team.DisplayName != "" {
					names = append(names, t.Team.DisplayName)
				}
			}
		}
	}
	return names, nil
}

// PlayerNames collects athlete names from today's boxscores. Slips are
// almost always about players with a game today, so the day's summaries
// are the roster that matters for prop matching. Events whose summary
// fails are skipped.
func (c *Client) PlayerNames(ctx context.Context, league string) ([]string, error) {
	sb, err := c.Scoreboard(ctx, league)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, ev := range sb.Events {
		sum, err := c.Summary(ctx, league, ev.ID)
		if err != nil {
			continue
		}
		for _, group := range sum.Boxscore.Players {
			for _, table := range group.Statistics {
				for _, line := range table.Athletes {
					name := line.Athlete.DisplayName
					if name != "" && !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
		}
	}
	return names, nil
}
