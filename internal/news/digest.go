// Package news renders a trader-facing digest of market conditions:
// live events, notable price movement, and where goods are cheap.
package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tradewinds/internal/clock"
	"github.com/talgya/tradewinds/internal/econ"
	"github.com/talgya/tradewinds/internal/history"
)

// Digest writes the current market report. Stable prices stay out of
// the paper; only movement and live events make the cut.
func Digest(e *econ.Economy) string {
	var b strings.Builder

	day := e.Now()/clock.MinutesPerDay + 1
	fmt.Fprintf(&b, "Trade Gazette, %s day of %s\n", humanize.Ordinal(int(day)), e.Season())

	var lines []string
	for _, loc := range e.Ledger().LocationIDs() {
		for _, ev := range e.ActiveEvents(loc) {
			lm := e.Ledger().Location(loc)
			lines = append(lines, fmt.Sprintf("%s in %s, ending in %s.",
				ev.Type.Name, lm.Name, untilText(e.Now(), ev.Expires)))
		}
	}
	for _, ev := range e.ActiveGlobalEvents() {
		lines = append(lines, fmt.Sprintf("%s across the realm, ending in %s.",
			ev.Type.Name, untilText(e.Now(), ev.Expires)))
	}
	if len(lines) > 0 {
		b.WriteString("\nEvents:\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
	}

	var moves []string
	for _, loc := range e.Ledger().LocationIDs() {
		lm := e.Ledger().Location(loc)
		snap := e.MarketSnapshot(loc)
		for _, entry := range snap.Entries {
			trend := e.PriceTrend(loc, entry.Item)
			if trend == history.TrendStable {
				continue
			}
			moves = append(moves, fmt.Sprintf("%s is %s in %s, now %s gold.",
				entry.Name, trend, lm.Name, humanize.Comma(int64(entry.Price))))
		}
	}
	if len(moves) > 0 {
		b.WriteString("\nMarkets:\n")
		for _, l := range moves {
			b.WriteString("  " + l + "\n")
		}
	}

	if len(lines) == 0 && len(moves) == 0 {
		b.WriteString("\nA quiet day of steady prices across the realm.\n")
	}
	return b.String()
}

// untilText renders remaining minutes as rough humanized time.
func untilText(now, expires int64) string {
	remaining := expires - now
	if remaining < 1 {
		remaining = 1
	}
	epoch := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(epoch, epoch.Add(time.Duration(remaining)*time.Minute), "", ""))
}
