package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/cosmosnotify/govbot/src/govbot/components/assessment"
	"github.com/cosmosnotify/govbot/src/govbot/components/feed"
)

const (
	// DefaultExplorerURL is the proposal deep-link base used when the state
	// file does not override it.
	DefaultExplorerURL = "https://www.mintscan.io/osmosis/proposals"

	summaryLimit = 1000
	dateLayout   = "January 02, 2006 at 15:04 UTC"
	divider      = "━━━━━━━━━━━━━━━━━━━━━"

	disclaimer = "*This is an automated assessment for informational purposes only. Please conduct your own research before voting.*"
)

// FormatProposal renders the announcement body for a proposal. Pure
// formatting; now is injected so remaining time is deterministic.
func FormatProposal(p feed.Proposal, explorerURL string, now time.Time) (string, error) {
	title := p.Title
	if title == "" {
		title = "Unknown Title"
	}
	summary := p.Summary
	if summary == "" {
		summary = "No summary available"
	}
	// Character cap, not bytes; summaries are frequently non-ASCII.
	if r := []rune(summary); len(r) > summaryLimit {
		summary = string(r[:summaryLimit]) + "..."
	}

	start, err := ParseTimestamp(p.VotingStartTime)
	if err != nil {
		return "", fmt.Errorf("parse voting start time: %w", err)
	}
	end, err := ParseTimestamp(p.VotingEndTime)
	if err != nil {
		return "", fmt.Errorf("parse voting end time: %w", err)
	}

	// Truncation toward zero, so already-closed proposals show a negative
	// day count. Known display quirk, kept as-is.
	daysRemaining := int(end.Sub(now).Hours() / 24)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **%s**\n\n%s\n\n%s\n", title, summary, divider)
	b.WriteString("⏰ **Voting Period**\n")
	fmt.Fprintf(&b, "🗳️ Started: %s\n", start.UTC().Format(dateLayout))
	fmt.Fprintf(&b, "🔚 Ends: %s\n", end.UTC().Format(dateLayout))
	fmt.Fprintf(&b, "⏳ Time remaining: ~%d days\n\n", daysRemaining)
	fmt.Fprintf(&b, "🔗 [View proposal](%s/%d)\n", explorerURL, p.ID)
	return b.String(), nil
}

// FormatAssessment renders the AI assessment follow-up message.
func FormatAssessment(a assessment.Assessment) string {
	var marker, verdict string
	switch {
	case a.Rating >= 8:
		marker, verdict = "🟢", "STRONG SUPPORT"
	case a.Rating >= 6:
		marker, verdict = "🟡", "MODERATE SUPPORT"
	case a.Rating >= 4:
		marker, verdict = "🟠", "NEUTRAL/CAUTION"
	default:
		marker, verdict = "🔴", "NOT RECOMMENDED"
	}

	var b strings.Builder
	b.WriteString("🤖 **AI Assessment**\n\n")
	fmt.Fprintf(&b, "%s **%s** (%d/10)\n\n", marker, verdict, a.Rating)
	fmt.Fprintf(&b, "**Analysis:**\n%s\n\n%s\n%s", a.Reason, divider, disclaimer)
	return b.String()
}

// ParseTimestamp parses the feed's ISO-8601 timestamps. The API emits
// fractional seconds of arbitrary precision; anything beyond microseconds
// is truncated before parsing.
func ParseTimestamp(s string) (time.Time, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		frac := s[i+1 : j]
		if len(frac) > 6 {
			frac = frac[:6]
		}
		s = s[:i+1] + frac + s[j:]
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
