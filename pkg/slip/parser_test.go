package slip

import (
	"testing"

	"github.com/itsm-a-dev/BetTrackingBot/models"
)

type staticCatalog struct{}

func (staticCatalog) Leagues() []string {
	return []string{"NFL", "NBA", "MLB", "NHL", "UFC", "SOCCER"}
}

func (staticCatalog) Teams(league string) []string {
	switch league {
	case "NFL":
		return []string{"Dallas Cowboys", "Philadelphia Eagles", "New England Patriots", "Kansas City Chiefs"}
	case "NBA":
		return []string{"Boston Celtics", "Dallas Mavericks", "Los Angeles Lakers"}
	case "MLB":
		return []string{"New York Yankees", "Los Angeles Dodgers"}
	case "NHL":
		return []string{"Boston Bruins", "Florida Panthers"}
	default:
		return nil
	}
}

func (staticCatalog) Players(league string) []string {
	switch league {
	case "NFL":
		return []string{"Drake Maye", "Patrick Mahomes", "Rashee Rice", "CeeDee Lamb"}
	case "NBA":
		return []string{"Luka Doncic", "Jayson Tatum"}
	default:
		return nil
	}
}

func testParser() *Parser {
	return NewParser(staticCatalog{})
}

func TestParsePlayerPropSingle(t *testing.T) {
	transcript := "Hard Rock Bet\n" +
		"ID: 7731205568\n" +
		"Drake Maye - Passing Yards\n" +
		"Over 225.5\n" +
		"-115\n" +
		"Wager $10.00\n" +
		"To Win $18.70\n"

	slip := testParser().Parse(transcript)

	if slip.Book != BookHardRock {
		t.Errorf("book = %q, want hardrock", slip.Book)
	}
	if slip.BetType != models.BetSingle {
		t.Errorf("bet type = %q, want single", slip.BetType)
	}
	if len(slip.Legs) != 1 {
		t.Fatalf("legs = %d, want 1", len(slip.Legs))
	}
	leg := slip.Legs[0]
	if leg.Kind != models.MarketProp {
		t.Fatalf("kind = %q, want prop", leg.Kind)
	}
	if leg.Player != "Drake Maye" {
		t.Errorf("player = %q, want Drake Maye", leg.Player)
	}
	if leg.Stat != "passing yards" {
		t.Errorf("stat = %q, want passing yards", leg.Stat)
	}
	if leg.Side != models.SideOver {
		t.Errorf("side = %q, want over", leg.Side)
	}
	if leg.Line == nil || *leg.Line != 225.5 {
		t.Errorf("line = %v, want 225.5", leg.Line)
	}
	if leg.League != "NFL" {
		t.Errorf("league = %q, want NFL", leg.League)
	}
	if slip.Odds == nil || *slip.Odds != -115 {
		t.Errorf("odds = %v, want -115", slip.Odds)
	}
	if slip.Stake == nil || *slip.Stake != 10 {
		t.Errorf("stake = %v, want 10", slip.Stake)
	}
	if slip.Payout == nil || *slip.Payout != 18.70 {
		t.Errorf("payout = %v, want 18.70", slip.Payout)
	}
	if c := Confidence(slip); c != 0.9 {
		t.Errorf("confidence = %v, want 0.9", c)
	}
}

func TestParseSpreadTotalParlay(t *testing.T) {
	transcript := "DraftKings Sportsbook\n" +
		"Parlay +264\n" +
		"Dallas Cowboys -3.5\n" +
		"Over 44.5\n" +
		"Cowboys @ Eagles\n" +
		"Wager: $20.00\n" +
		"Total payout: $72.80\n"

	slip := testParser().Parse(transcript)

	if slip.Book != BookDraftKings {
		t.Errorf("book = %q, want draftkings", slip.Book)
	}
	if slip.BetType != models.BetParlay {
		t.Errorf("bet type = %q, want parlay", slip.BetType)
	}
	if len(slip.Legs) != 2 {
		t.Fatalf("legs = %d, want 2", len(slip.Legs))
	}

	spread := slip.Legs[0]
	if spread.Kind != models.MarketSpread {
		t.Fatalf("leg 0 kind = %q, want spread", spread.Kind)
	}
	if spread.Team != "Dallas Cowboys" {
		t.Errorf("spread team = %q, want Dallas Cowboys", spread.Team)
	}
	if spread.Line == nil || *spread.Line != -3.5 {
		t.Errorf("spread line = %v, want -3.5", spread.Line)
	}

	total := slip.Legs[1]
	if total.Kind != models.MarketTotal {
		t.Fatalf("leg 1 kind = %q, want total", total.Kind)
	}
	if total.Side != models.SideOver {
		t.Errorf("total side = %q, want over", total.Side)
	}
	if total.Line == nil || *total.Line != 44.5 {
		t.Errorf("total line = %v, want 44.5", total.Line)
	}
	if len(total.GameTeams) != 2 || total.GameTeams[0] != "Dallas Cowboys" || total.GameTeams[1] != "Philadelphia Eagles" {
		t.Errorf("game teams = %v, want [Dallas Cowboys Philadelphia Eagles]", total.GameTeams)
	}

	if slip.League != "NFL" {
		t.Errorf("league = %q, want NFL", slip.League)
	}
	if slip.Odds == nil || *slip.Odds != 264 {
		t.Errorf("odds = %v, want +264", slip.Odds)
	}
	if slip.Stake == nil || *slip.Stake != 20 {
		t.Errorf("stake = %v, want 20", slip.Stake)
	}
	if slip.Payout == nil || *slip.Payout != 72.80 {
		t.Errorf("payout = %v, want 72.80", slip.Payout)
	}
}

func TestParseMilestoneProp(t *testing.T) {
	slip := testParser().Parse("Rashee Rice 3+ Receptions\nWager $5.00\n")
	if len(slip.Legs) != 1 {
		t.Fatalf("legs = %d, want 1", len(slip.Legs))
	}
	leg := slip.Legs[0]
	if leg.Kind != models.MarketProp {
		t.Fatalf("kind = %q, want prop", leg.Kind)
	}
	if leg.Stat != "receptions" {
		t.Errorf("stat = %q, want receptions", leg.Stat)
	}
	if leg.Side != models.SideOver || leg.Line == nil || *leg.Line != 2.5 {
		t.Errorf("side/line = %q/%v, want over/2.5", leg.Side, leg.Line)
	}
}

func TestParseAnytimeTD(t *testing.T) {
	slip := testParser().Parse("Patrick Mahomes Anytime TD\n+450\n")
	if len(slip.Legs) != 1 {
		t.Fatalf("legs = %d, want 1", len(slip.Legs))
	}
	leg := slip.Legs[0]
	if leg.Kind != models.MarketProp || leg.Stat != "anytime td" {
		t.Fatalf("kind/stat = %q/%q, want prop/anytime td", leg.Kind, leg.Stat)
	}
	// Binary props carry a yes/no side and no printed line.
	if leg.Side != models.SideYes || leg.Line != nil {
		t.Errorf("side/line = %q/%v, want yes/nil", leg.Side, leg.Line)
	}
}

func TestParseYesNoProp(t *testing.T) {
	slip := testParser().Parse("Rashee Rice - Anytime TD\nYes\n+320\n")
	if len(slip.Legs) != 1 {
		t.Fatalf("legs = %d, want 1", len(slip.Legs))
	}
	leg := slip.Legs[0]
	if leg.Kind != models.MarketProp || leg.Stat != "anytime td" {
		t.Fatalf("kind/stat = %q/%q, want prop/anytime td", leg.Kind, leg.Stat)
	}
	if leg.Side != models.SideYes || leg.Line != nil {
		t.Errorf("side/line = %q/%v, want yes/nil", leg.Side, leg.Line)
	}

	slip = testParser().Parse("Drake Maye - To Record An Interception\nNo\n-150\n")
	if len(slip.Legs) != 1 {
		t.Fatalf("no-side legs = %d, want 1", len(slip.Legs))
	}
	if got := slip.Legs[0].Side; got != models.SideNo {
		t.Errorf("side = %q, want no", got)
	}
}

func TestStakeBareDollarFallback(t *testing.T) {
	slip := testParser().Parse("Drake Maye - Passing Yards\nOver 225.5\n-115\n$50.00\n")
	if slip.Stake == nil || *slip.Stake != 50 {
		t.Fatalf("stake = %v, want 50 via bare dollar fallback", slip.Stake)
	}

	// The to-win amount must not be read as the stake.
	slip = testParser().Parse("Drake Maye - Passing Yards\nOver 225.5\nTo Win $91.00\n")
	if slip.Stake != nil {
		t.Fatalf("stake = %v, want nil when only the payout shows", *slip.Stake)
	}
	if slip.Payout == nil || *slip.Payout != 91 {
		t.Fatalf("payout = %v, want 91", slip.Payout)
	}

	// An explicit wager keyword still wins over earlier bare amounts.
	slip = testParser().Parse("$5.00 free bet applied\nWager $10.00\nTo Win $18.70\n")
	if slip.Stake == nil || *slip.Stake != 10 {
		t.Fatalf("stake = %v, want 10 from the wager keyword", slip.Stake)
	}
}

func TestParseMoneyline(t *testing.T) {
	slip := testParser().Parse("Kansas City Chiefs Moneyline\n-180\n")
	if len(slip.Legs) != 1 {
		t.Fatalf("legs = %d, want 1", len(slip.Legs))
	}
	leg := slip.Legs[0]
	if leg.Kind != models.MarketMoneyline {
		t.Fatalf("kind = %q, want moneyline", leg.Kind)
	}
	if leg.Team != "Kansas City Chiefs" {
		t.Errorf("team = %q, want Kansas City Chiefs", leg.Team)
	}
	if slip.Odds == nil || *slip.Odds != -180 {
		t.Errorf("odds = %v, want -180", slip.Odds)
	}
}

func TestUnparsableSlipLowConfidence(t *testing.T) {
	slip := testParser().Parse("fuzzy noise with no market text at all\n")
	for _, leg := range slip.Legs {
		if leg.Kind != models.MarketUnknown {
			t.Fatalf("kind = %q, want unknown", leg.Kind)
		}
	}
	if c := Confidence(slip); c != 0.5 {
		t.Errorf("confidence = %v, want 0.5", c)
	}
}

func TestOddsSkipsDecimalSpread(t *testing.T) {
	odds := extractOdds("Eagles -10.5\nOdds -110")
	if odds == nil || *odds != -110 {
		t.Fatalf("odds = %v, want -110", odds)
	}
}
