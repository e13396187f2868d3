// Package tracker runs the live-tracking state machine: two polling
// loops walk the active bets, correlate them to scoreboard events,
// update prop progress, settle legs as games go final, and retire bets
// whose every leg is terminal. Leg results only ever move from pending
// to a terminal state and a bet's game correlation is never redone once
// a game id is pinned.
package tracker

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/itsm-a-dev/BetTrackingBot/models"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/espn"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/metrics"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/render"
)

// Provider reads scoreboards and game summaries.
type Provider interface {
	Scoreboard(ctx context.Context, league string) (*espn.Scoreboard, error)
	Summary(ctx context.Context, league, eventID string) (*espn.Summary, error)
}

// Store persists the active bet set across restarts.
type Store interface {
	Load() (map[string]*models.TrackedBet, error)
	Save(map[string]*models.TrackedBet) error
}

// Engine owns the active bet map and the two polling loops.
type Engine struct {
	mu     sync.Mutex
	active map[string]*models.TrackedBet

	store    Store
	surface  render.Surface
	provider Provider
	metrics  *metrics.TrackerMetrics

	scoresEvery time.Duration
	propsEvery  time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Config carries the engine's collaborators and loop cadences.
type Config struct {
	Store       Store
	Surface     render.Surface
	Provider    Provider
	Metrics     *metrics.TrackerMetrics
	ScoresEvery time.Duration
	PropsEvery  time.Duration
}

func New(cfg Config) *Engine {
	if cfg.ScoresEvery <= 0 {
		cfg.ScoresEvery = 60 * time.Second
	}
	if cfg.PropsEvery <= 0 {
		cfg.PropsEvery = 20 * time.Second
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Default()
	}
	return &Engine{
		active:      make(map[string]*models.TrackedBet),
		store:       cfg.Store,
		surface:     cfg.Surface,
		provider:    cfg.Provider,
		metrics:     cfg.Metrics,
		scoresEvery: cfg.ScoresEvery,
		propsEvery:  cfg.PropsEvery,
	}
}

// Start loads persisted bets and launches both loops. The engine is
// ready to accept Add calls as soon as Start returns.
func (e *Engine) Start(ctx context.Context) error {
	if e.store != nil {
		loaded, err := e.store.Load()
		if err != nil {
			return err
		}
		e.mu.Lock()
		for id, bet := range loaded {
			if !bet.Settled() {
				e.active[id] = bet
			}
		}
		e.metrics.ActiveBets.Set(float64(len(e.active)))
		e.mu.Unlock()
		log.Printf("[tracker] restored %d active bets", len(loaded))
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.wg.Add(2)
	go e.loop(ctx, e.scoresEvery, e.scoresTick)
	go e.loop(ctx, e.propsEvery, e.propsTick)
	return nil
}

// Stop cancels the loops, waits them out and writes a final snapshot.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.persistLocked()
	log.Printf("[tracker] stopped with %d bets still active", len(e.active))
}

func (e *Engine) loop(ctx context.Context, every time.Duration, tick func(context.Context)) {
	defer e.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}

// Add registers a bet for tracking and persists the new set.
func (e *Engine) Add(bet *models.TrackedBet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active[bet.ID] = bet
	e.metrics.ActiveBets.Set(float64(len(e.active)))
	e.persistLocked()
}

// Remove drops a bet from tracking. Used by the manual delete API.
func (e *Engine) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.active[id]; !ok {
		return false
	}
	delete(e.active, id)
	e.metrics.ActiveBets.Set(float64(len(e.active)))
	e.persistLocked()
	return true
}

// Get returns the tracked bet with the given id.
func (e *Engine) Get(id string) (*models.TrackedBet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	bet, ok := e.active[id]
	return bet, ok
}

// List snapshots the active bets.
func (e *Engine) List() []*models.TrackedBet {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*models.TrackedBet, 0, len(e.active))
	for _, bet := range e.active {
		out = append(out, bet)
	}
	return out
}

func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.active); err != nil {
		log.Printf("[tracker] persist failed: %v", err)
	}
}

// scoresTick drives the team markets: one scoreboard fetch per league
// in play, then correlation and settlement for every bet with at least
// one non-prop leg. A failure on one bet never blocks the rest.
func (e *Engine) scoresTick(ctx context.Context) {
	e.mu.Lock()
	leagues := make(map[string]bool)
	var bets []*models.TrackedBet
	for _, bet := range e.active {
		if bet.AllProps() {
			continue
		}
		bets = append(bets, bet)
		for _, leg := range bet.Legs {
			if leg.League != "" {
				leagues[leg.League] = true
			}
		}
	}
	e.mu.Unlock()

	boards := e.fetchScoreboards(ctx, leagues)

	failures := 0
	for _, bet := range bets {
		edit, err := e.applyScores(bet, boards)
		if err != nil {
			log.Printf("[tracker] scores tick bet %s: %v", bet.ID, err)
			failures++
		}
		edit.send(ctx, e)
	}
	e.metrics.RecordTick("scores", failures)
	e.sweep(ctx)
}

// propsTick drives the player props on the faster cadence: correlate,
// fetch each pinned game's summary once, then update and settle every
// pending prop leg.
func (e *Engine) propsTick(ctx context.Context) {
	e.mu.Lock()
	leagues := make(map[string]bool)
	var bets []*models.TrackedBet
	for _, bet := range e.active {
		if !hasPendingProp(bet) {
			continue
		}
		bets = append(bets, bet)
		for _, leg := range bet.Legs {
			if leg.Kind == models.MarketProp && leg.League != "" {
				leagues[leg.League] = true
			}
		}
	}
	e.mu.Unlock()

	boards := e.fetchScoreboards(ctx, leagues)
	summaries := make(map[string]*espn.Summary)

	failures := 0
	for _, bet := range bets {
		edit, err := e.applyProps(ctx, bet, boards, summaries)
		if err != nil {
			log.Printf("[tracker] props tick bet %s: %v", bet.ID, err)
			failures++
		}
		edit.send(ctx, e)
	}
	e.metrics.RecordTick("props", failures)
	e.sweep(ctx)
}

func (e *Engine) fetchScoreboards(ctx context.Context, leagues map[string]bool) map[string]*espn.Scoreboard {
	boards := make(map[string]*espn.Scoreboard)
	for league := range leagues {
		sb, err := e.provider.Scoreboard(ctx, league)
		if err != nil {
			log.Printf("[tracker] scoreboard %s: %v", league, err)
			continue
		}
		boards[league] = sb
	}
	return boards
}

func hasPendingProp(bet *models.TrackedBet) bool {
	for _, leg := range bet.Legs {
		if leg.Kind == models.MarketProp && leg.Result == models.ResultPending {
			return true
		}
	}
	return false
}

// correlate pins the leg to a scoreboard event. A leg that already has
// a game id keeps it forever.
func correlate(leg *models.Leg, bet *models.TrackedBet, sb *espn.Scoreboard) *espn.Event {
	if sb == nil {
		return nil
	}
	if leg.GameID != "" {
		return findEventByID(sb, leg.GameID)
	}
	teams := leg.GameTeams
	if len(teams) == 0 {
		// borrow a pair from a sibling leg on the same game
		for _, other := range bet.Legs {
			if other.League == leg.League && len(other.GameTeams) == 2 {
				teams = other.GameTeams
				break
			}
		}
	}
	if len(teams) == 0 && leg.Team != "" {
		teams = []string{leg.Team}
	}
	ev, ok := espn.FindEventForTeams(sb, teams)
	if !ok {
		return nil
	}
	leg.GameID = ev.ID
	return ev
}

func findEventByID(sb *espn.Scoreboard, id string) *espn.Event {
	for i := range sb.Events {
		if sb.Events[i].ID == id {
			return &sb.Events[i]
		}
	}
	return nil
}

// pendingEdit is a card update formatted under the lock and sent after
// it is released; surface calls are network I/O.
type pendingEdit struct {
	handle string
	text   string
}

func (p pendingEdit) send(ctx context.Context, e *Engine) {
	if p.handle == "" || e.surface == nil {
		return
	}
	if err := e.surface.Edit(ctx, p.handle, p.text); err != nil {
		log.Printf("[tracker] render edit %s: %v", p.handle, err)
	}
}

// applyScores correlates and settles the team-market legs of one bet.
func (e *Engine) applyScores(bet *models.TrackedBet, boards map[string]*espn.Scoreboard) (pendingEdit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := false
	for _, leg := range bet.Legs {
		if leg.Kind == models.MarketProp || leg.Kind == models.MarketUnknown {
			continue
		}
		if leg.Result != models.ResultPending {
			continue
		}
		pinned := leg.GameID
		ev := correlate(leg, bet, boards[leg.League])
		if leg.GameID != pinned {
			changed = true
		}
		if ev == nil {
			continue
		}
		if result, ok := settleTeamLeg(leg, ev); ok {
			leg.Result = result
			e.metrics.RecordLegResult(string(leg.Kind), string(result))
			changed = true
		}
	}
	if !changed {
		return pendingEdit{}, nil
	}
	e.persistLocked()
	return pendingEdit{handle: bet.RenderHandle, text: render.FormatBet(bet)}, nil
}

// applyProps updates prop progress for one bet, settling legs whose
// game has gone final. summaries memoizes fetches across bets in a tick.
// Correlation and mutation run under the lock; the summary fetches are
// network calls and happen between the two locked phases.
func (e *Engine) applyProps(ctx context.Context, bet *models.TrackedBet, boards map[string]*espn.Scoreboard, summaries map[string]*espn.Summary) (pendingEdit, error) {
	e.mu.Lock()
	changed := false
	var wanted []string
	for _, leg := range bet.Legs {
		if leg.Kind != models.MarketProp || leg.Result != models.ResultPending {
			continue
		}
		pinned := leg.GameID
		correlate(leg, bet, boards[leg.League])
		if leg.GameID != pinned {
			changed = true
		}
		if leg.GameID != "" {
			wanted = append(wanted, leg.League+":"+leg.GameID)
		}
	}
	e.mu.Unlock()

	var fetchErr error
	for _, key := range wanted {
		if _, ok := summaries[key]; ok {
			continue
		}
		league, gameID, _ := strings.Cut(key, ":")
		sum, err := e.provider.Summary(ctx, league, gameID)
		if err != nil {
			fetchErr = err
			continue
		}
		summaries[key] = sum
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, leg := range bet.Legs {
		if leg.Kind != models.MarketProp || leg.Result != models.ResultPending || leg.GameID == "" {
			continue
		}
		sum, ok := summaries[leg.League+":"+leg.GameID]
		if !ok {
			continue
		}
		if value, found := espn.PlayerStat(sum, leg.League, leg.Player, leg.Stat); found {
			v := value
			leg.CurrentValue = &v
			changed = true
		}
		side, line, settleable := propThreshold(leg)
		if settleable && sum.Final() && leg.CurrentValue != nil {
			leg.Result = settleOverUnder(side, *leg.CurrentValue, line)
			e.metrics.RecordLegResult(string(leg.Kind), string(leg.Result))
			changed = true
		}
	}
	if !changed {
		return pendingEdit{}, fetchErr
	}
	e.persistLocked()
	return pendingEdit{handle: bet.RenderHandle, text: render.FormatBet(bet)}, fetchErr
}

// sweep retires every fully terminal bet: its card is finalized and the
// bet leaves the active map and the persisted snapshot in one step.
func (e *Engine) sweep(ctx context.Context) {
	e.mu.Lock()
	var edits []pendingEdit
	var outcomes []models.LegResult
	var ids []string
	for id, bet := range e.active {
		if bet.Settled() {
			delete(e.active, id)
			ids = append(ids, id)
			outcomes = append(outcomes, bet.Outcome())
			edits = append(edits, pendingEdit{handle: bet.RenderHandle, text: render.FormatBet(bet)})
		}
	}
	if len(ids) > 0 {
		e.metrics.ActiveBets.Set(float64(len(e.active)))
		e.persistLocked()
	}
	e.mu.Unlock()

	for i := range ids {
		e.metrics.RecordSettlement(string(outcomes[i]))
		log.Printf("[settle] bet %s settled: %s", ids[i], outcomes[i])
		edits[i].send(ctx, e)
	}
}
