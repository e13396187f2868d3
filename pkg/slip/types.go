// Package slip turns an OCR transcript into a structured bet slip: a
// sportsbook-style detection and normalization step (format router)
// followed by leg segmentation, market classification and fuzzy entity
// resolution against the league catalogs.
package slip

import (
	"github.com/itsm-a-dev/BetTrackingBot/models"
)

// ParsedSlip is the structured result of parsing one transcript. The leg
// order is fixed at parse time and preserved through every re-render.
type ParsedSlip struct {
	BetType models.BetType
	League  string
	Odds    *int
	Stake   *float64
	Payout  *float64
	Legs    []*models.Leg
	Book    Sportsbook
	Raw     string
}

// Catalog is the read side of the entity catalogs the parser matches
// against. Implementations must be safe for concurrent reads and must
// never block a lookup on a refresh in progress.
type Catalog interface {
	// Leagues returns the league keys in fixed priority order; the order
	// is the deterministic tie-break for league voting.
	Leagues() []string
	// Teams returns the team roster for a league (nil for leagues, such
	// as UFC, that have no closed roster).
	Teams(league string) []string
	// Players returns the known player names for a league; may be empty
	// until a roster refresh has run.
	Players(league string) []string
}

// Fuzzy-match thresholds (0-100). The source heuristics drifted between
// near-duplicate implementations; this is the one authoritative set.
const (
	thresholdTeamVote  = 70 // counts a team mention toward league voting
	thresholdTeamPool  = 65 // accepts a team into the game_teams pool
	thresholdTeamPair  = 60 // resolves an @/vs side to a roster team
	thresholdMoneyline = 75 // resolves the picked team of a moneyline leg
	thresholdPlayer    = 70 // resolves a prop player to a league roster
)

// Confidence computes the coarse intake confidence for a parsed slip:
// high when at least one leg classified to a concrete market, low when
// everything fell through to unknown. The caller compares this against
// the configured threshold before creating any state.
func Confidence(p *ParsedSlip) float64 {
	for _, leg := range p.Legs {
		if leg.Kind != models.MarketUnknown {
			return 0.9
		}
	}
	return 0.5
}
