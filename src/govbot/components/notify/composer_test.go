package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosnotify/govbot/src/govbot/components/assessment"
	"github.com/cosmosnotify/govbot/src/govbot/components/feed"
)

func testProposal() feed.Proposal {
	return feed.Proposal{
		ID:              42,
		Title:           "Fund the community pool",
		Summary:         "A short summary",
		Status:          feed.StatusVotingPeriod,
		VotingStartTime: "2024-05-01T10:00:00.123456789Z",
		VotingEndTime:   "2024-05-06T10:00:00Z",
	}
}

func TestFormatProposalTruncatesSummary(t *testing.T) {
	p := testProposal()
	p.Summary = strings.Repeat("a", 1500)

	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	msg, err := FormatProposal(p, DefaultExplorerURL, now)
	require.NoError(t, err)

	assert.Contains(t, msg, strings.Repeat("a", 1000)+"...")
	assert.NotContains(t, msg, strings.Repeat("a", 1001))
}

func TestFormatProposalTruncatesMultibyteSummary(t *testing.T) {
	p := testProposal()
	p.Summary = strings.Repeat("é", 1500)

	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	msg, err := FormatProposal(p, DefaultExplorerURL, now)
	require.NoError(t, err)

	assert.Contains(t, msg, strings.Repeat("é", 1000)+"...")
	assert.NotContains(t, msg, strings.Repeat("é", 1001))
	assert.NotContains(t, msg, "�")
}

func TestFormatProposalShortSummaryUntouched(t *testing.T) {
	p := testProposal()
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	msg, err := FormatProposal(p, DefaultExplorerURL, now)
	require.NoError(t, err)
	assert.Contains(t, msg, "A short summary\n")
	assert.NotContains(t, msg, "A short summary...")
}

func TestFormatProposalDatesAndLink(t *testing.T) {
	p := testProposal()
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	msg, err := FormatProposal(p, "https://explorer.example/props", now)
	require.NoError(t, err)

	assert.Contains(t, msg, "Started: May 01, 2024 at 10:00 UTC")
	assert.Contains(t, msg, "Ends: May 06, 2024 at 10:00 UTC")
	assert.Contains(t, msg, "https://explorer.example/props/42")
}

func TestFormatProposalDaysRemaining(t *testing.T) {
	p := testProposal()

	// 4 days 10 hours before the end.
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	msg, err := FormatProposal(p, DefaultExplorerURL, now)
	require.NoError(t, err)
	assert.Contains(t, msg, "Time remaining: ~4 days")

	// Voting already ended; the negative count is rendered as-is.
	now = time.Date(2024, 5, 7, 16, 0, 0, 0, time.UTC)
	msg, err = FormatProposal(p, DefaultExplorerURL, now)
	require.NoError(t, err)
	assert.Contains(t, msg, "Time remaining: ~-1 days")
}

func TestFormatProposalFallbacks(t *testing.T) {
	p := testProposal()
	p.Title = ""
	p.Summary = ""
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	msg, err := FormatProposal(p, DefaultExplorerURL, now)
	require.NoError(t, err)
	assert.Contains(t, msg, "Unknown Title")
	assert.Contains(t, msg, "No summary available")
}

func TestFormatProposalBadTimestamp(t *testing.T) {
	p := testProposal()
	p.VotingEndTime = "not-a-date"

	_, err := FormatProposal(p, DefaultExplorerURL, time.Now())
	assert.Error(t, err)
}

func TestFormatAssessmentBuckets(t *testing.T) {
	tests := []struct {
		rating  int
		verdict string
	}{
		{10, "STRONG SUPPORT"},
		{8, "STRONG SUPPORT"},
		{7, "MODERATE SUPPORT"},
		{6, "MODERATE SUPPORT"},
		{5, "NEUTRAL/CAUTION"},
		{4, "NEUTRAL/CAUTION"},
		{3, "NOT RECOMMENDED"},
		{0, "NOT RECOMMENDED"},
	}

	for _, tt := range tests {
		msg := FormatAssessment(assessment.Assessment{Rating: tt.rating, Reason: "because"})
		assert.Contains(t, msg, tt.verdict, "rating %d", tt.rating)
	}
}

func TestFormatAssessmentContents(t *testing.T) {
	msg := FormatAssessment(assessment.Assessment{Rating: 7, Reason: "Clear budget and milestones"})

	assert.Contains(t, msg, "(7/10)")
	assert.Contains(t, msg, "Clear budget and milestones")
	assert.Contains(t, msg, "automated assessment")
}

func TestParseTimestampFractionalDigits(t *testing.T) {
	// Nine fractional digits must parse, truncated to microseconds.
	ts, err := ParseTimestamp("2024-05-01T10:00:00.123456789Z")
	require.NoError(t, err)
	assert.Equal(t, 123456000, ts.Nanosecond())

	ts, err = ParseTimestamp("2024-05-01T10:00:00.5Z")
	require.NoError(t, err)
	assert.Equal(t, 500000000, ts.Nanosecond())

	ts, err = ParseTimestamp("2024-05-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 0, ts.Nanosecond())

	// Offset timezones with long fractions.
	ts, err = ParseTimestamp("2024-05-01T10:00:00.1234567891+02:00")
	require.NoError(t, err)
	assert.Equal(t, 123456000, ts.Nanosecond())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
