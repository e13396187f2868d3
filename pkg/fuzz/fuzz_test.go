package fuzz

import "testing"

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"Dallas Cowboys", "dallas cowboys", 100},
		{"  Dallas   Cowboys ", "dallas cowboys", 100},
		{"", "", 100},
		{"", "cowboys", 0},
	}
	for _, tc := range cases {
		if got := Ratio(tc.a, tc.b); got != tc.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
	if got := Ratio("cowboys", "cowbows"); got < 80 {
		t.Errorf("one-edit typo scored %d, want >= 80", got)
	}
	if got := Ratio("cowboys", "eagles"); got > 40 {
		t.Errorf("unrelated names scored %d, want <= 40", got)
	}
}

func TestPartialRatioFindsSubstring(t *testing.T) {
	if got := PartialRatio("Cowboys", "Dallas Cowboys -3.5 Spread"); got != 100 {
		t.Fatalf("substring scored %d, want 100", got)
	}
	if got := PartialRatio("Maye", "Drake Maye - Passing Yards"); got != 100 {
		t.Fatalf("player substring scored %d, want 100", got)
	}
}

func TestExtractOne(t *testing.T) {
	choices := []string{"Philadelphia Eagles", "Dallas Cowboys", "New York Giants"}
	m, ok := ExtractOne("cowbys", choices)
	if !ok || m.Text != "Dallas Cowboys" {
		t.Fatalf("got %+v ok=%v, want Dallas Cowboys", m, ok)
	}
	if _, ok := ExtractOne("anything", nil); ok {
		t.Fatal("empty choices should not match")
	}
}

func TestExtractOrderingAndThreshold(t *testing.T) {
	choices := []string{"Dallas Cowboys", "Dallas Mavericks", "Philadelphia Eagles"}
	out := Extract("Dallas", choices, 2, 60)
	if len(out) != 2 {
		t.Fatalf("got %d matches, want 2", len(out))
	}
	if out[0].Score < out[1].Score {
		t.Fatalf("matches not ordered by score: %+v", out)
	}
	// equal scores keep input order
	tied := Extract("Dallas", []string{"Dallas A", "Dallas B"}, 0, 50)
	if len(tied) == 2 && tied[0].Score == tied[1].Score && tied[0].Index > tied[1].Index {
		t.Fatalf("tie-break lost input order: %+v", tied)
	}
}
