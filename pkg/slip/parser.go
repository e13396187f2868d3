package slip

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/itsm-a-dev/BetTrackingBot/models"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/fuzz"
)

var (
	// Signed american odds. A trailing decimal continuation means the
	// match is really a spread line ("-10.5"), so the caller skips those.
	reOdds = regexp.MustCompile(`(?:^|[^0-9])([+-]\d{2,4})\b`)

	reStake  = regexp.MustCompile(`(?i)\b(?:total\s+)?(?:wager|stake|risk)[:\s]*\$?\s*([0-9][\d,]*(?:\.\d+)?)`)
	rePayout = regexp.MustCompile(`(?i)\b(?:total\s+payout|payout|to\s+win|winnings)[:\s]*\$?\s*([0-9][\d,]*(?:\.\d+)?)`)
	reMoney  = regexp.MustCompile(`\$\s*([0-9][\d,]*(?:\.\d+)?)`)

	reOverUnder = regexp.MustCompile(`(?i)\b(over|under|o|u)\s*([0-9]+(?:\.[0-9]+)?)\b`)
	reMilestone = regexp.MustCompile(`\b(\d+)\+\s`)

	reTeamSpread = regexp.MustCompile(`\b([A-Za-z][A-Za-z .'-]+?)\s+([+-]\d+(?:\.\d+)?)\b`)
	reMatchupAt  = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z .'-]+?)\s+@\s+([A-Za-z][A-Za-z .'-]+)`)
	reMatchupVs  = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z .'-]+?)\s+vs\.?\s+([A-Za-z][A-Za-z .'-]+)`)

	// The name repetition is lazy so capitalized stat words ("Anytime
	// TD") end up in the stat group, not the name.
	rePlayerStat = regexp.MustCompile(`\b([A-Z][A-Za-z'.]+(?:\s+[A-Z][A-Za-z'.-]+)+?)\s*[-:]?\s+([A-Za-z3+ ]+)`)
	rePlayerName = regexp.MustCompile(`^\s*([A-Z][A-Za-z'.]+(?:\s+[A-Z][A-Za-z'.-]+)+)\s*$`)
	reLegStart   = regexp.MustCompile(`(?i)^\s*(?:over|under|yes|no)\b|^\s*\d+\+|\bto\s+record\b|\banytime\s+td\b|\bto\s+score\b|^\s*leg\s+\d+\b`)
	reYesNo      = regexp.MustCompile(`(?im)^\s*(yes|no)\b`)
	reWinnerKey  = regexp.MustCompile(`(?i)\b(?:to\s+win|winner|moneyline|\bml\b)\b`)
	reTotalKey   = regexp.MustCompile(`(?i)\btotal\s+(?:points|runs|goals|rounds|match\s+points)\b`)
)

// Keyword nudges for league voting, checked by substring on the
// lowercased transcript. Team roster hits carry most of the signal;
// these break ties for prop-only slips with no team names in view.
var leagueKeywords = map[string][]string{
	"NFL":    {"nfl", "touchdown", "passing", "rushing", "receiving", "sack", "field goal"},
	"NBA":    {"nba", "rebound", "assist", "three pointer", "3pt", "double double"},
	"MLB":    {"mlb", "inning", "home run", "strikeout", "rbi", "total bases", "pitcher"},
	"NHL":    {"nhl", "puck", "shots on goal", "period", "power play"},
	"UFC":    {"ufc", "octagon", "ko/tko", "significant strikes", "takedown", "rounds"},
	"SOCCER": {"premier league", "la liga", "serie a", "bundesliga", "goal scorer", "both teams to score", " fc "},
}

// Words that mark pure slip chrome. A short block made of these and
// nothing market-shaped is discarded during segmentation.
var chromeWords = map[string]bool{
	"wager": true, "stake": true, "risk": true, "payout": true,
	"odds": true, "share": true, "cash": true, "out": true,
	"placed": true, "settled": true, "open": true, "bets": true,
	"win": true, "paid": true, "to": true,
}

// Parser turns routed transcripts into ParsedSlips. It holds no mutable
// state and is safe for concurrent use as long as the Catalog is.
type Parser struct {
	cat Catalog
}

func NewParser(cat Catalog) *Parser {
	return &Parser{cat: cat}
}

// Parse runs the full pipeline on one raw transcript: route, extract
// the money fields, segment legs, classify markets and resolve entities.
func (p *Parser) Parse(text string) *ParsedSlip {
	book, normalized := RouteTranscript(text)

	slip := &ParsedSlip{
		Book:   book,
		Raw:    text,
		Odds:   extractOdds(normalized),
		Stake:  extractStake(normalized),
		Payout: extractMoney(rePayout, normalized),
	}

	blocks := segmentBlocks(book, normalized)
	for _, block := range blocks {
		slip.Legs = append(slip.Legs, p.classifyBlock(block))
	}

	slip.League = p.voteLeague(normalized)
	for _, leg := range slip.Legs {
		p.resolveEntities(leg, slip.League)
	}
	// A leg can pin the league when the header could not.
	if slip.League == "" {
		for _, leg := range slip.Legs {
			if leg.League != "" {
				slip.League = leg.League
				break
			}
		}
	}

	if len(slip.Legs) > 1 {
		slip.BetType = models.BetParlay
	} else {
		slip.BetType = models.BetSingle
	}
	log.Printf("[slip] parsed book=%s type=%s league=%q legs=%d", book, slip.BetType, slip.League, len(slip.Legs))
	return slip
}

// extractOdds returns the first signed 2-4 digit integer in the text
// that is not the integer part of a decimal spread line.
func extractOdds(text string) *int {
	for _, loc := range reOdds.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		if end+1 < len(text) && text[end] == '.' && text[end+1] >= '0' && text[end+1] <= '9' {
			continue
		}
		n, err := strconv.Atoi(text[start:end])
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

// extractStake prefers an explicit wager/stake/risk amount. Slips that
// only show the bare dollar figure fall back to the first "$X" on a line
// with no payout phrasing, so the to-win amount is never mistaken for
// the stake.
func extractStake(text string) *float64 {
	if v := extractMoney(reStake, text); v != nil {
		return v
	}
	for _, line := range strings.Split(text, "\n") {
		if rePayout.MatchString(line) {
			continue
		}
		if v := extractMoney(reMoney, line); v != nil {
			return v
		}
	}
	return nil
}

func extractMoney(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// segmentBlocks groups the normalized lines into leg blocks. A new
// block opens at every leg-start marker or blank line; blocks that are
// nothing but slip chrome are dropped. When the layout numbers its legs,
// the printed markers are authoritative and the speculative leg-start
// heuristics stay out of the way.
func segmentBlocks(book Sportsbook, text string) []string {
	legged := book == BookDraftKings && reLegMarker.MatchString(text)
	var blocks []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		block := strings.Join(current, "\n")
		current = nil
		if !isChromeBlock(block) {
			blocks = append(blocks, block)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if len(current) > 0 {
			if legged {
				if reLegMarker.MatchString(trimmed) {
					flush()
				}
			} else if reLegStart.MatchString(trimmed) && !attachesToProp(trimmed, current) {
				// An over/under line directly under a player-stat header
				// is the prop's own line, not a new leg.
				flush()
			}
		}
		current = append(current, trimmed)
	}
	flush()
	return blocks
}

func attachesToProp(line string, current []string) bool {
	if !reOverUnder.MatchString(line) && !reYesNo.MatchString(line) {
		return false
	}
	block := strings.Join(current, "\n")
	if _, _, ok := matchPlayerStat(block); !ok {
		return false
	}
	return !reOverUnder.MatchString(block) && !reYesNo.MatchString(block)
}

func isChromeBlock(block string) bool {
	tokens := strings.Fields(strings.ToLower(block))
	if len(tokens) > 3 {
		return false
	}
	if reOverUnder.MatchString(block) || reOdds.MatchString(block) {
		return false
	}
	for _, t := range tokens {
		if chromeWords[strings.Trim(t, ":$.,")] {
			return true
		}
	}
	return false
}

// classifyBlock assigns the market kind for one leg block. Priority is
// fixed: player prop, then total, then spread, then moneyline, with
// unknown as the fall-through. Entity resolution happens later so this
// stays a pure text step.
func (p *Parser) classifyBlock(block string) *models.Leg {
	leg := &models.Leg{
		Kind:     models.MarketUnknown,
		RawBlock: block,
		Result:   models.ResultPending,
	}

	if name, stat, ok := matchPlayerStat(block); ok {
		leg.Kind = models.MarketProp
		leg.Player = name
		leg.Stat = stat
		leg.TargetText = name + " " + stat
		applyPropSideLine(leg, block)
		return leg
	}

	if m := reOverUnder.FindStringSubmatch(block); m != nil {
		leg.Kind = models.MarketTotal
		leg.Side = overUnderSide(m[1])
		line, _ := strconv.ParseFloat(m[2], 64)
		leg.Line = &line
		leg.TargetText = sideLabel(leg.Side) + " " + m[2]
		return leg
	}

	// A total header whose number the OCR mangled still classifies; it
	// just cannot settle until re-read.
	if reTotalKey.MatchString(block) {
		leg.Kind = models.MarketTotal
		leg.TargetText = firstLine(block)
		return leg
	}

	if team, line, ok := p.matchSpread(block); ok {
		leg.Kind = models.MarketSpread
		leg.Team = team
		leg.Line = &line
		leg.TargetText = team + " " + strconv.FormatFloat(line, 'f', -1, 64)
		return leg
	}

	if reWinnerKey.MatchString(block) {
		leg.Kind = models.MarketMoneyline
		for _, line := range strings.Split(block, "\n") {
			if reWinnerKey.MatchString(line) {
				leg.Team = strings.TrimSpace(reWinnerKey.ReplaceAllString(line, " "))
				break
			}
		}
		leg.TargetText = leg.Team
		return leg
	}

	leg.TargetText = firstLine(block)
	return leg
}

// matchPlayerStat finds a capitalized multi-word name followed by a
// phrase that resolves in the stat vocabulary. Both must hold or the
// block is not a prop. Matching runs per line so slip headers above the
// leg cannot shadow the real name.
func matchPlayerStat(block string) (name, stat string, ok bool) {
	lines := strings.Split(block, "\n")
	for _, line := range lines {
		for _, m := range rePlayerStat.FindAllStringSubmatch(line, -1) {
			if s := canonicalStat(m[2]); s != "" {
				return strings.TrimSpace(m[1]), s, true
			}
		}
	}
	// Some layouts put the name on its own line with the stat below it.
	for i := 1; i < len(lines); i++ {
		if s := canonicalStat(lines[i]); s != "" {
			if m := rePlayerName.FindStringSubmatch(lines[i-1]); m != nil {
				return strings.TrimSpace(m[1]), s, true
			}
		}
	}
	return "", "", false
}

// applyPropSideLine fills the prop's side and line. An over/under
// number wins, then "N+" milestones (over N-0.5), then binary yes/no
// phrasing, which carries a side but no numeric line; the tracker maps
// yes/no onto an implied half-count threshold only at settlement.
func applyPropSideLine(leg *models.Leg, block string) {
	if m := reOverUnder.FindStringSubmatch(block); m != nil {
		leg.Side = overUnderSide(m[1])
		line, _ := strconv.ParseFloat(m[2], 64)
		leg.Line = &line
		return
	}
	if m := reMilestone.FindStringSubmatch(block + " "); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		line := n - 0.5
		leg.Side = models.SideOver
		leg.Line = &line
		return
	}
	if m := reYesNo.FindStringSubmatch(block); m != nil {
		if strings.EqualFold(m[1], "no") {
			leg.Side = models.SideNo
		} else {
			leg.Side = models.SideYes
		}
		return
	}
	if leg.Stat == "anytime td" || strings.Contains(strings.ToLower(block), "to score") {
		leg.Side = models.SideYes
	}
}

func sideLabel(s models.Side) string {
	if s == models.SideOver {
		return "Over"
	}
	return "Under"
}

func overUnderSide(tok string) models.Side {
	switch strings.ToLower(tok) {
	case "over", "o":
		return models.SideOver
	default:
		return models.SideUnder
	}
}

// matchSpread keeps only team-plus-handicap matches whose left side
// fuzzy-resolves somewhere in the roster catalogs. Without that check
// "Wager -110" reads as a spread.
func (p *Parser) matchSpread(block string) (string, float64, bool) {
	for _, m := range reTeamSpread.FindAllStringSubmatch(block, -1) {
		line, err := strconv.ParseFloat(m[2], 64)
		if err != nil || line <= -100 || line >= 100 {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		for _, league := range p.cat.Leagues() {
			if best, ok := fuzz.ExtractOne(candidate, p.cat.Teams(league)); ok && best.Score >= thresholdTeamVote {
				return candidate, line, true
			}
		}
	}
	return "", 0, false
}

// voteLeague scores every league against the transcript: one vote per
// line that fuzzy-hits a roster team plus one per keyword nudge. Ties
// resolve by the catalog's fixed league order.
func (p *Parser) voteLeague(text string) string {
	lower := strings.ToLower(text)
	lines := strings.Split(text, "\n")
	bestLeague, bestVotes := "", 0
	for _, league := range p.cat.Leagues() {
		votes := 0
		if teams := p.cat.Teams(league); len(teams) > 0 {
			for _, line := range lines {
				if strings.TrimSpace(line) == "" {
					continue
				}
				if best, ok := fuzz.ExtractOne(line, teams); ok && best.Score >= thresholdTeamVote {
					votes++
				}
			}
		}
		for _, kw := range leagueKeywords[league] {
			if strings.Contains(lower, kw) {
				votes++
			}
		}
		if votes > bestVotes {
			bestLeague, bestVotes = league, votes
		}
	}
	return bestLeague
}

// resolveEntities pins a leg's league, canonical player or team, and
// the game team pair. Resolution is best effort: a leg that resolves
// nothing stays usable for rendering, it just cannot be settled.
func (p *Parser) resolveEntities(leg *models.Leg, slipLeague string) {
	switch leg.Kind {
	case models.MarketProp:
		p.resolvePlayer(leg, slipLeague)
	case models.MarketSpread:
		p.resolveTeam(leg, slipLeague, thresholdTeamVote)
	case models.MarketMoneyline:
		p.resolveTeam(leg, slipLeague, thresholdMoneyline)
	default:
		if leg.League == "" {
			leg.League = slipLeague
		}
	}
	if leg.League == "" {
		leg.League = slipLeague
	}
	leg.GameTeams = p.extractGameTeams(leg.RawBlock, leg.League)
}

// resolvePlayer matches the parsed name against every league roster,
// preferring the slip's contextual league on equal scores.
func (p *Parser) resolvePlayer(leg *models.Leg, slipLeague string) {
	bestScore := 0
	for _, league := range orderedWithFirst(p.cat.Leagues(), slipLeague) {
		players := p.cat.Players(league)
		if len(players) == 0 {
			continue
		}
		if best, ok := fuzz.ExtractOne(leg.Player, players); ok && best.Score >= thresholdPlayer && best.Score > bestScore {
			leg.Player = best.Text
			leg.League = league
			bestScore = best.Score
		}
	}
	if leg.League == "" {
		leg.League = slipLeague
	}
}

func (p *Parser) resolveTeam(leg *models.Leg, slipLeague string, threshold int) {
	bestScore := 0
	for _, league := range orderedWithFirst(p.cat.Leagues(), slipLeague) {
		teams := p.cat.Teams(league)
		if len(teams) == 0 {
			continue
		}
		if best, ok := fuzz.ExtractOne(leg.Team, teams); ok && best.Score >= threshold && best.Score > bestScore {
			leg.Team = best.Text
			leg.League = league
			bestScore = best.Score
		}
	}
	if leg.League == "" {
		leg.League = slipLeague
	}
}

// extractGameTeams recovers the two teams of the underlying game. The
// explicit "@" or "vs" matchup wins; otherwise the two best distinct
// roster hits in the block form the pair. One or zero hits means the
// pair stays empty and correlation is left to richer context later.
func (p *Parser) extractGameTeams(block, league string) []string {
	if league == "" {
		return nil
	}
	teams := p.cat.Teams(league)
	if len(teams) == 0 {
		return nil
	}
	for _, re := range []*regexp.Regexp{reMatchupAt, reMatchupVs} {
		m := re.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		a, aok := fuzz.ExtractOne(strings.TrimSpace(m[1]), teams)
		b, bok := fuzz.ExtractOne(strings.TrimSpace(m[2]), teams)
		if aok && bok && a.Score >= thresholdTeamPair && b.Score >= thresholdTeamPair && a.Text != b.Text {
			return []string{a.Text, b.Text}
		}
	}
	matches := fuzz.Extract(block, teams, 0, thresholdTeamPool)
	var pair []string
	for _, m := range matches {
		if len(pair) == 2 {
			break
		}
		if len(pair) == 1 && pair[0] == m.Text {
			continue
		}
		pair = append(pair, m.Text)
	}
	if len(pair) == 2 {
		return pair
	}
	return nil
}

func orderedWithFirst(leagues []string, first string) []string {
	if first == "" {
		return leagues
	}
	out := []string{first}
	for _, l := range leagues {
		if l != first {
			out = append(out, l)
		}
	}
	return out
}

func firstLine(block string) string {
	if i := strings.IndexByte(block, '\n'); i >= 0 {
		return block[:i]
	}
	return block
}
