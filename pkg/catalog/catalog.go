// Package catalog holds the team and player entity catalogs the parser
// and tracker match against. Reads are lock-cheap snapshots; refreshes
// swap whole slices so a lookup never observes a half-built roster.
package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// RosterSource supplies live team and player names for a league,
// typically backed by the scoreboard provider's roster feeds.
type RosterSource interface {
	TeamNames(ctx context.Context, league string) ([]string, error)
	PlayerNames(ctx context.Context, league string) ([]string, error)
}

type Catalog struct {
	src RosterSource

	mu          sync.RWMutex
	teams       map[string][]string
	players     map[string][]string
	lastRefresh time.Time

	// minimum age before a non-forced Refresh hits the source again
	maxAge time.Duration
}

// New builds a catalog seeded from the static league tables. src may be
// nil, in which case Refresh is a no-op and the seed is all there is.
func New(src RosterSource, maxAge time.Duration) *Catalog {
	teams := make(map[string][]string, len(seedTeams))
	for league, names := range seedTeams {
		teams[league] = append([]string(nil), names...)
	}
	return &Catalog{
		src:     src,
		teams:   teams,
		players: make(map[string][]string),
		maxAge:  maxAge,
	}
}

// Leagues returns the league keys in fixed priority order.
func (c *Catalog) Leagues() []string {
	return leagueOrder
}

func (c *Catalog) Teams(league string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.teams[league]
}

func (c *Catalog) Players(league string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.players[league]
}

// Refresh pulls fresh rosters from the source. Unless forced it is a
// no-op while the current snapshot is younger than maxAge. A league
// whose fetch fails keeps its previous entries; partial progress on the
// other leagues is still committed.
func (c *Catalog) Refresh(ctx context.Context, force bool) error {
	if c.src == nil {
		return nil
	}
	c.mu.RLock()
	fresh := time.Since(c.lastRefresh) < c.maxAge
	c.mu.RUnlock()
	if fresh && !force {
		return nil
	}

	var firstErr error
	for _, league := range leagueOrder {
		if _, seeded := seedTeams[league]; !seeded {
			continue
		}
		teams, err := c.src.TeamNames(ctx, league)
		if err != nil {
			log.Printf("[catalog] %s team refresh failed: %v", league, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("refresh %s teams: %w", league, err)
			}
		} else if len(teams) > 0 {
			c.mu.Lock()
			c.teams[league] = teams
			c.mu.Unlock()
		}

		players, err := c.src.PlayerNames(ctx, league)
		if err != nil {
			log.Printf("[catalog] %s player refresh failed: %v", league, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("refresh %s players: %w", league, err)
			}
		} else if len(players) > 0 {
			c.mu.Lock()
			c.players[league] = players
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	c.lastRefresh = time.Now()
	c.mu.Unlock()
	log.Printf("[catalog] roster refresh complete (err=%v)", firstErr)
	return firstErr
}

// RunScheduled refreshes on a fixed interval until ctx is cancelled.
// Meant to be started once from main in its own goroutine.
func (c *Catalog) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx, false); err != nil {
				log.Printf("[catalog] scheduled refresh: %v", err)
			}
		}
	}
}
