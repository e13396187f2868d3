// Package render owns the outward-facing bet cards: formatting a
// tracked bet into a message and posting or editing it on a chat
// surface. The tracker re-renders through the same handle on every
// change so a bet occupies exactly one message for its whole life.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsm-a-dev/BetTrackingBot/models"
)

// Surface is anywhere a bet card can live. Post returns an opaque
// handle that Edit accepts for in-place updates later.
type Surface interface {
	Post(ctx context.Context, text string) (handle string, err error)
	Edit(ctx context.Context, handle, text string) error
}

func resultEmoji(r models.LegResult) string {
	switch r {
	case models.ResultWon:
		return "✅"
	case models.ResultLost:
		return "❌"
	case models.ResultPush:
		return "➖"
	default:
		return "⏳"
	}
}

// FormatBet renders the live card for one tracked bet.
func FormatBet(bet *models.TrackedBet) string {
	var b strings.Builder

	title := "Single"
	if bet.BetType == models.BetParlay {
		title = fmt.Sprintf("%d-Leg Parlay", len(bet.Legs))
	}
	if bet.Odds != nil {
		title += fmt.Sprintf(" %+d", *bet.Odds)
	}
	b.WriteString(fmt.Sprintf("*%s*", escapeMarkdown(title)))
	if bet.Book != "" {
		b.WriteString(fmt.Sprintf(" _(%s)_", escapeMarkdown(string(bet.Book))))
	}
	b.WriteString("\n")

	for i, leg := range bet.Legs {
		b.WriteString(fmt.Sprintf("%s %s", resultEmoji(leg.Result), escapeMarkdown(legLabel(leg))))
		if leg.CurrentValue != nil && leg.Kind == models.MarketProp {
			b.WriteString(escapeMarkdown(fmt.Sprintf(" [%.0f]", *leg.CurrentValue)))
		}
		if i < len(bet.Legs)-1 {
			b.WriteString("\n")
		}
	}

	if bet.Stake != nil || bet.Payout != nil {
		b.WriteString("\n")
		if bet.Stake != nil {
			b.WriteString(escapeMarkdown(fmt.Sprintf("$%.2f", *bet.Stake)))
		}
		if bet.Payout != nil {
			b.WriteString(escapeMarkdown(fmt.Sprintf(" to pay $%.2f", *bet.Payout)))
		}
	}

	if bet.Settled() {
		b.WriteString(fmt.Sprintf("\n%s *%s*", resultEmoji(bet.Outcome()), strings.ToUpper(string(bet.Outcome()))))
	}
	return b.String()
}

func legLabel(leg *models.Leg) string {
	if leg.TargetText != "" {
		return leg.TargetText
	}
	return string(leg.Kind)
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
