package espn

import (
	"strconv"
	"strings"

	"github.com/itsm-a-dev/BetTrackingBot/pkg/fuzz"
)

// athleteThreshold is the minimum fuzzy score for matching a slip's
// player name to a boxscore athlete.
const athleteThreshold = 70

// statRef names one boxscore cell: a statistics table and the column
// label inside it. Composite stats sum over several refs.
type statRef struct {
	Table string
	Label string
}

// statMaps translates canonical stat keys to boxscore cells per league.
// Table names and labels follow ESPN's summary payloads.
var statMaps = map[string]map[string][]statRef{
	"NFL": {
		"passing yards":     {{"passing", "YDS"}},
		"passing tds":       {{"passing", "TD"}},
		"interceptions":     {{"passing", "INT"}},
		"completions":       {{"passing", "C/ATT"}},
		"rushing yards":     {{"rushing", "YDS"}},
		"rushing tds":       {{"rushing", "TD"}},
		"longest rush":      {{"rushing", "LONG"}},
		"receiving yards":   {{"receiving", "YDS"}},
		"receiving tds":     {{"receiving", "TD"}},
		"receptions":        {{"receiving", "REC"}},
		"longest reception": {{"receiving", "LONG"}},
		"anytime td":        {{"rushing", "TD"}, {"receiving", "TD"}},
		"tackles":           {{"defensive", "TOT"}},
		"field goals made":  {{"kicking", "FG"}},
	},
	"NBA": {
		"points":   {{"", "PTS"}},
		"rebounds": {{"", "REB"}},
		"assists":  {{"", "AST"}},
		"steals":   {{"", "STL"}},
		"blocks":   {{"", "BLK"}},
		"threes":   {{"", "3PT"}},
		"pra":      {{"", "PTS"}, {"", "REB"}, {"", "AST"}},
	},
	"MLB": {
		"hits":         {{"batting", "H"}},
		"runs":         {{"batting", "R"}},
		"rbis":         {{"batting", "RBI"}},
		"home runs":    {{"batting", "HR"}},
		"total bases":  {{"batting", "TB"}},
		"stolen bases": {{"batting", "SB"}},
		"walks":        {{"batting", "BB"}},
		"strikeouts":   {{"pitching", "K"}},
		"earned runs":  {{"pitching", "ER"}},
		"hits allowed": {{"pitching", "H"}},
	},
	"NHL": {
		"goals":         {{"skaters", "G"}},
		"assists":       {{"skaters", "A"}},
		"shots on goal": {{"skaters", "SOG"}},
		"saves":         {{"goalies", "SV"}},
	},
	// Soccer summaries carry one combined athlete table per side, so
	// refs match on label alone.
	"SOCCER": {
		"goals":         {{"", "G"}},
		"assists":       {{"", "A"}},
		"shots":         {{"", "SH"}},
		"shots on goal": {{"", "ST"}},
		"saves":         {{"", "SV"}},
		"yellow cards":  {{"", "YC"}},
		"red cards":     {{"", "RC"}},
	},
	"UFC": {
		"significant strikes": {{"striking", "SIG STR"}},
		"knockdowns":          {{"striking", "KD"}},
		"takedowns":           {{"grappling", "TD"}},
	},
}

// PlayerStat finds an athlete's current value for a canonical stat in a
// game summary. Composite stats (anytime td, pra) sum their parts.
// found is false when the league or stat is unmapped, the athlete is
// not in the boxscore, or the cell has not been populated yet.
func PlayerStat(sum *Summary, league, player, stat string) (value float64, found bool) {
	refs, ok := statMaps[league][stat]
	if !ok || sum == nil {
		return 0, false
	}
	total := 0.0
	anyFound := false
	for _, ref := range refs {
		if v, ok := cellValue(sum, ref, player); ok {
			total += v
			anyFound = true
		}
	}
	return total, anyFound
}

func cellValue(sum *Summary, ref statRef, player string) (float64, bool) {
	for _, group := range sum.Boxscore.Players {
		for _, table := range group.Statistics {
			if ref.Table != "" && !strings.EqualFold(table.Name, ref.Table) {
				continue
			}
			col := columnIndex(table.Labels, ref.Label)
			if col < 0 {
				continue
			}
			line, ok := matchAthlete(table.Athletes, player)
			if !ok || col >= len(line.Stats) {
				continue
			}
			if v, ok := parseStatValue(line.Stats[col]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func columnIndex(labels []string, label string) int {
	for i, l := range labels {
		if strings.EqualFold(l, label) {
			return i
		}
	}
	return -1
}

func matchAthlete(lines []AthleteLine, player string) (AthleteLine, bool) {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Athlete.DisplayName
	}
	best, ok := fuzz.ExtractOne(player, names)
	if !ok || best.Score < athleteThreshold {
		return AthleteLine{}, false
	}
	return lines[best.Index], true
}

// parseStatValue reads the numeric value out of a boxscore cell. Cells
// can be plain numbers ("264"), dashes for DNP, or compound forms like
// "26/34"; the last numeric token is the counting value in every
// compound form ESPN emits here.
func parseStatValue(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "--" || cell == "-" {
		return 0, false
	}
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
