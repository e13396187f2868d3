package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MarketKind discriminates what a leg is wagering on.
type MarketKind string

const (
	MarketProp      MarketKind = "prop"
	MarketTotal     MarketKind = "total"
	MarketSpread    MarketKind = "spread"
	MarketMoneyline MarketKind = "moneyline"
	MarketUnknown   MarketKind = "unknown"
)

// Side of an over/under or yes/no proposition.
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
	SideYes   Side = "yes"
	SideNo    Side = "no"
)

// LegResult is the settlement state of one leg. Pending is the only
// non-terminal state; once a leg is terminal it is never rewritten.
type LegResult string

const (
	ResultPending LegResult = "pending"
	ResultWon     LegResult = "won"
	ResultLost    LegResult = "lost"
	ResultPush    LegResult = "push"
)

// Terminal reports whether the result can no longer change.
func (r LegResult) Terminal() bool {
	return r == ResultWon || r == ResultLost || r == ResultPush
}

// BetType classifies a slip by leg count.
type BetType string

const (
	BetSingle BetType = "single"
	BetParlay BetType = "parlay"
)

// Leg is one wagered proposition inside a slip. Kind decides which fields
// are meaningful: Player/Stat for props, Team for spreads and moneylines,
// Side/Line for anything with an over/under. The parser fills a leg once;
// after that only the tracker mutates it (GameID, CurrentValue, Result),
// and those mutations are monotonic — a set GameID or terminal Result is
// never cleared or replaced.
type Leg struct {
	Kind         MarketKind `json:"kind"`
	League       string     `json:"league,omitempty"`
	Player       string     `json:"player,omitempty"`
	Stat         string     `json:"stat,omitempty"`
	Side         Side       `json:"side,omitempty"`
	Line         *float64   `json:"line,omitempty"`
	Team         string     `json:"team,omitempty"`
	TargetText   string     `json:"target_text,omitempty"`
	GameTeams    []string   `json:"game_teams,omitempty"`
	GameID       string     `json:"game_id,omitempty"`
	CurrentValue *float64   `json:"current_value,omitempty"`
	Result       LegResult  `json:"result"`
	RawBlock     string     `json:"raw_block,omitempty"`
}

// LegList stores the ordered legs of a bet as a single JSON column.
type LegList []*Leg

// Value implements driver.Valuer.
func (l LegList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal legs: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. A corrupt column degrades to zero legs
// rather than failing the whole load.
func (l *LegList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported legs column type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	var out LegList
	if err := json.Unmarshal(data, &out); err != nil {
		*l = nil
		return nil
	}
	*l = out
	return nil
}

// TrackedBet is the persisted aggregate for one slip under live tracking.
// ID derives from the source message/attachment (or a fresh UUID for
// manual bets). RenderHandle is the opaque handle returned by the render
// surface; the engine only ever passes it back for edits.
type TrackedBet struct {
	ID           string `gorm:"primaryKey;size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	BetType      BetType  `gorm:"size:16;not null"`
	League       string   `gorm:"size:16"`
	Odds         *int     `json:"odds,omitempty"`
	Stake        *float64 `json:"stake,omitempty"`
	Payout       *float64 `json:"payout,omitempty"`
	Book         string   `gorm:"size:32"`
	Legs         LegList  `gorm:"type:text"`
	RenderHandle string   `gorm:"size:128"`
}

// Settled reports whether every leg has reached a terminal result.
func (b *TrackedBet) Settled() bool {
	if len(b.Legs) == 0 {
		return false
	}
	for _, leg := range b.Legs {
		if !leg.Result.Terminal() {
			return false
		}
	}
	return true
}

// Outcome computes the bet-level result once all legs are terminal.
// Parlays win only when every leg won; a single-leg bet mirrors its leg.
func (b *TrackedBet) Outcome() LegResult {
	if !b.Settled() {
		return ResultPending
	}
	if b.BetType == BetSingle && len(b.Legs) == 1 {
		return b.Legs[0].Result
	}
	for _, leg := range b.Legs {
		if leg.Result != ResultWon {
			return ResultLost
		}
	}
	return ResultWon
}

// AllProps reports whether every leg is a player prop. Such bets are
// handled exclusively by the faster props cadence.
func (b *TrackedBet) AllProps() bool {
	for _, leg := range b.Legs {
		if leg.Kind != MarketProp {
			return false
		}
	}
	return len(b.Legs) > 0
}
