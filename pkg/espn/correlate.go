package espn

import (
	"github.com/itsm-a-dev/BetTrackingBot/pkg/fuzz"
)

// correlationThreshold is the minimum score BOTH slip teams must reach
// against an event before the event is considered the bet's game.
const correlationThreshold = 70

// FindEventForTeams locates the scoreboard event for a pair of team
// names read off a slip. An event scores as the minimum of the two best
// per-team matches against its competitors, so one strong name cannot
// carry a wrong game. Ties keep the earlier event, which makes
// correlation deterministic for a given scoreboard.
func FindEventForTeams(sb *Scoreboard, teams []string) (*Event, bool) {
	if sb == nil || len(teams) == 0 {
		return nil, false
	}
	var best *Event
	bestScore := 0
	for i := range sb.Events {
		ev := &sb.Events[i]
		score := eventScore(ev, teams)
		if score > bestScore {
			best, bestScore = ev, score
		}
	}
	if bestScore < correlationThreshold {
		return nil, false
	}
	return best, true
}

// eventScore returns min over slip teams of each team's best competitor
// match. With a single slip team the single score stands alone.
func eventScore(ev *Event, teams []string) int {
	if len(ev.Competitions) == 0 {
		return 0
	}
	names := competitorNames(ev)
	score := 101
	for _, team := range teams {
		best := 0
		for _, n := range names {
			if s := nameScore(team, n); s > best {
				best = s
			}
		}
		if best < score {
			score = best
		}
	}
	if score == 101 {
		return 0
	}
	return score
}

// nameScore compares a slip team name against one competitor name.
// Short names like the 3-letter abbreviation get whole-string matching:
// windowed partial-ratio would score 100 for any name merely containing
// those letters ("Miami DolPHIns" against "PHI").
func nameScore(query, name string) int {
	if len(name) <= 4 || len(query) <= 4 {
		return fuzz.Ratio(query, name)
	}
	return fuzz.PartialRatio(query, name)
}

func competitorNames(ev *Event) []string {
	var names []string
	for _, comp := range ev.Competitions {
		for _, c := range comp.Competitors {
			names = append(names, c.Team.DisplayName, c.Team.ShortDisplayName, c.Team.Abbreviation)
		}
	}
	return names
}
