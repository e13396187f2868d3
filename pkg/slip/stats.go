package slip

import "strings"

// propStats maps transcript phrasings to canonical stat keys. Keys are
// matched by substring containment on the lowercased leg text in slice
// order, most specific phrase first, so "kicking points" wins over
// "points".
var propStats = []struct {
	Phrase    string
	Canonical string
}{
	{"passing yards", "passing yards"},
	{"pass yds", "passing yards"},
	{"passing touchdowns", "passing tds"},
	{"passing tds", "passing tds"},
	{"pass tds", "passing tds"},
	{"rushing yards", "rushing yards"},
	{"rush yds", "rushing yards"},
	{"rushing touchdowns", "rushing tds"},
	{"rushing tds", "rushing tds"},
	{"receiving yards", "receiving yards"},
	{"rec yds", "receiving yards"},
	{"receiving touchdowns", "receiving tds"},
	{"receptions", "receptions"},
	{"anytime td", "anytime td"},
	{"anytime touchdown", "anytime td"},
	{"to score a touchdown", "anytime td"},
	{"interceptions", "interceptions"},
	{"interception", "interceptions"},
	{"completions", "completions"},
	{"longest reception", "longest reception"},
	{"longest rush", "longest rush"},
	{"kicking points", "kicking points"},
	{"field goals made", "field goals made"},
	{"pts + rebs + asts", "pra"},
	{"points + rebounds + assists", "pra"},
	{"pra", "pra"},
	{"three pointers", "threes"},
	{"3-pointers", "threes"},
	{"threes made", "threes"},
	{"3pt made", "threes"},
	{"rebounds", "rebounds"},
	{"assists", "assists"},
	{"steals", "steals"},
	{"blocks", "blocks"},
	{"double double", "double double"},
	{"triple double", "triple double"},
	{"total bases", "total bases"},
	{"home runs", "home runs"},
	{"home run", "home runs"},
	{"stolen bases", "stolen bases"},
	{"strikeouts", "strikeouts"},
	{"pitcher strikeouts", "strikeouts"},
	{"earned runs", "earned runs"},
	{"hits + runs + rbis", "hrr"},
	{"hits allowed", "hits allowed"},
	{"rbis", "rbis"},
	{"rbi", "rbis"},
	{"hits", "hits"},
	{"runs", "runs"},
	{"walks", "walks"},
	{"singles", "singles"},
	{"doubles", "doubles"},
	{"shots on goal", "shots on goal"},
	{"saves", "saves"},
	{"goals", "goals"},
	{"points", "points"},
	{"shots", "shots"},
	{"tackles", "tackles"},
	{"takedowns", "takedowns"},
	{"significant strikes", "significant strikes"},
	{"sig strikes", "significant strikes"},
	{"knockdowns", "knockdowns"},
	{"yellow cards", "yellow cards"},
	{"red cards", "red cards"},
}

// canonicalStat resolves the stat phrase inside a leg's text to its
// canonical key. Empty string when nothing in the vocabulary matches.
func canonicalStat(text string) string {
	lower := strings.ToLower(text)
	for _, s := range propStats {
		if strings.Contains(lower, s.Phrase) {
			return s.Canonical
		}
	}
	return ""
}
