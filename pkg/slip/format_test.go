package slip

import (
	"strings"
	"testing"
)

func TestRouteTranscriptDetectsBook(t *testing.T) {
	cases := []struct {
		text string
		want Sportsbook
	}{
		{"HARD ROCK BET\nParlay", BookHardRock},
		{"DraftKings Sportsbook SGPMax", BookDraftKings},
		{"FanDuel Same Game Parlay", BookFanDuel},
		{"BetMGM\nWager $5", BookBetMGM},
		{"Caesars Sportsbook", BookCaesars},
		{"some unbranded slip", BookGeneric},
	}
	for _, c := range cases {
		if book, _ := RouteTranscript(c.text); book != c.want {
			t.Errorf("RouteTranscript(%q) book = %q, want %q", c.text, book, c.want)
		}
	}
}

func TestRouteTranscriptDropsNoiseKeepsMarkets(t *testing.T) {
	_, out := RouteTranscript("ID: 99218833\nDallas Cowboys -3.5\n7:30 PM EDT\nShare\nOver 44.5\n")
	if strings.Contains(out, "99218833") {
		t.Errorf("bet id survived routing: %q", out)
	}
	if strings.Contains(out, "7:30") || strings.Contains(out, "Share") {
		t.Errorf("chrome line survived routing: %q", out)
	}
	for _, keep := range []string{"Dallas Cowboys -3.5", "Over 44.5"} {
		if !strings.Contains(out, keep) {
			t.Errorf("market text %q lost in routing: %q", keep, out)
		}
	}
}

func TestRouteTranscriptBreaksGluedBoundaries(t *testing.T) {
	_, out := RouteTranscript("Dallas Cowboys -3.5 Wager $20.00 To Win $38.00\n")
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected glued markers split onto own lines, got %q", out)
	}
	if strings.TrimSpace(lines[0]) != "Dallas Cowboys -3.5" {
		t.Errorf("first line = %q, want the spread alone", lines[0])
	}
}

func TestRouteTranscriptStructuralFallbacks(t *testing.T) {
	cases := []struct {
		text string
		want Sportsbook
	}{
		{"Leg 1\nDallas Cowboys -3.5\nLeg 2\nOver 44.5", BookDraftKings},
		{"Parlay 2 legs +264\nDallas Cowboys -3.5\nOver 44.5", BookFanDuel},
		{"Dallas Cowboys -3.5\nWager $20.00\nTo Win $38.00", BookHardRock},
		{"Dallas Cowboys -3.5\nOver 44.5", BookGeneric},
	}
	for _, c := range cases {
		if book, _ := RouteTranscript(c.text); book != c.want {
			t.Errorf("RouteTranscript(%q) book = %q, want %q", c.text, book, c.want)
		}
	}

	// A named book always outranks structure.
	if book, _ := RouteTranscript("Caesars Sportsbook\nLeg 1\nOver 44.5"); book != BookCaesars {
		t.Errorf("token hint lost to structure: %q", book)
	}
}

func TestSegmentBlocksLeggedLayout(t *testing.T) {
	text := "Leg 1\nDallas Cowboys @ Philadelphia Eagles\nOver 44.5\n-110\n" +
		"Leg 2\nDrake Maye - Passing Yards\nOver 225.5\n-115"

	blocks := segmentBlocks(BookDraftKings, text)
	if len(blocks) != 2 {
		t.Fatalf("legged blocks = %d (%q), want 2", len(blocks), blocks)
	}
	if !strings.Contains(blocks[0], "Over 44.5") || !strings.Contains(blocks[0], "Philadelphia") {
		t.Errorf("first leg split from its own total line: %q", blocks[0])
	}
	if !strings.Contains(blocks[1], "Drake Maye") {
		t.Errorf("second leg missing its prop header: %q", blocks[1])
	}

	// Without the label the matchup header and its total line separate.
	if generic := segmentBlocks(BookGeneric, text); len(generic) == 2 {
		t.Error("marker-only segmentation applied to an unlabeled slip")
	}
}

func TestSegmentBlocksDropsChrome(t *testing.T) {
	blocks := segmentBlocks(BookGeneric, "Total Wager\n\nDallas Cowboys -3.5\n\nOver 44.5\n")
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d (%q), want 2", len(blocks), blocks)
	}
	for _, b := range blocks {
		if strings.Contains(b, "Total Wager") {
			t.Errorf("chrome-only block survived: %q", b)
		}
	}
}
