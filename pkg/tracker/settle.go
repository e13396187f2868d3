package tracker

import (
	"strconv"

	"github.com/itsm-a-dev/BetTrackingBot/models"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/espn"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/fuzz"
)

// settleTeamThreshold matches the leg's picked team to one of the
// event's competitors when grading spreads and moneylines.
const settleTeamThreshold = 70

// settleTeamLeg grades a spread, total or moneyline leg against a
// scoreboard event. ok is false while the game is not final or the
// scores cannot be read; the leg stays pending and the next tick tries
// again. Equality with the line or a tied moneyline is a push.
func settleTeamLeg(leg *models.Leg, ev *espn.Event) (models.LegResult, bool) {
	if !ev.Final() {
		return models.ResultPending, false
	}
	home, away, ok := finalScores(ev)
	if !ok {
		return models.ResultPending, false
	}

	switch leg.Kind {
	case models.MarketTotal:
		if leg.Line == nil {
			return models.ResultPending, false
		}
		return settleOverUnder(leg.Side, home.score+away.score, *leg.Line), true

	case models.MarketSpread:
		if leg.Line == nil {
			return models.ResultPending, false
		}
		picked, other, ok := pickSide(leg.Team, home, away)
		if !ok {
			return models.ResultPending, false
		}
		adjusted := picked.score + *leg.Line
		switch {
		case adjusted > other.score:
			return models.ResultWon, true
		case adjusted == other.score:
			return models.ResultPush, true
		default:
			return models.ResultLost, true
		}

	case models.MarketMoneyline:
		if home.score == away.score {
			return models.ResultPush, true
		}
		picked, other, ok := pickSide(leg.Team, home, away)
		if !ok {
			return models.ResultPending, false
		}
		if picked.score > other.score {
			return models.ResultWon, true
		}
		return models.ResultLost, true
	}
	return models.ResultPending, false
}

// propThreshold returns the numeric threshold a prop leg settles
// against. Binary yes/no props carry no printed line and grade against
// half a count: yes behaves as over 0.5, no as under 0.5. A prop with
// neither a line nor a yes/no side cannot settle.
func propThreshold(leg *models.Leg) (models.Side, float64, bool) {
	switch leg.Side {
	case models.SideYes:
		return models.SideOver, 0.5, true
	case models.SideNo:
		return models.SideUnder, 0.5, true
	}
	if leg.Line == nil {
		return leg.Side, 0, false
	}
	return leg.Side, *leg.Line, true
}

// settleOverUnder grades a line proposition at its final value. Landing
// exactly on the line is a push.
func settleOverUnder(side models.Side, value, line float64) models.LegResult {
	if value == line {
		return models.ResultPush
	}
	over := value > line
	if side == models.SideUnder {
		if over {
			return models.ResultLost
		}
		return models.ResultWon
	}
	if over {
		return models.ResultWon
	}
	return models.ResultLost
}

type scoredSide struct {
	name  string
	score float64
}

// finalScores reads both competitors' final scores off the event.
func finalScores(ev *espn.Event) (home, away scoredSide, ok bool) {
	if len(ev.Competitions) == 0 {
		return home, away, false
	}
	found := 0
	for _, c := range ev.Competitions[0].Competitors {
		score, err := strconv.ParseFloat(c.Score, 64)
		if err != nil {
			continue
		}
		side := scoredSide{name: c.Team.DisplayName, score: score}
		switch c.HomeAway {
		case "home":
			home = side
			found++
		case "away":
			away = side
			found++
		}
	}
	return home, away, found == 2
}

// pickSide resolves which competitor the leg's team text picked.
func pickSide(team string, home, away scoredSide) (picked, other scoredSide, ok bool) {
	if team == "" {
		return picked, other, false
	}
	homeScore := fuzz.PartialRatio(team, home.name)
	awayScore := fuzz.PartialRatio(team, away.name)
	if homeScore < settleTeamThreshold && awayScore < settleTeamThreshold {
		return picked, other, false
	}
	if homeScore >= awayScore {
		return home, away, true
	}
	return away, home, true
}
