package feed

import (
	"bytes"
	"fmt"
	"strconv"
)

// StatusVotingPeriod is the only proposal status that triggers a
// notification.
const StatusVotingPeriod = "PROPOSAL_STATUS_VOTING_PERIOD"

// ProposalID tolerates both encodings the gov API has used over time:
// quoted strings ("123") and bare numbers (123).
type ProposalID uint64

func (id *ProposalID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid proposal id %q: %w", data, err)
	}
	*id = ProposalID(v)
	return nil
}

// Proposal is a governance item as served by the feed. Read-only to this
// system.
type Proposal struct {
	ID              ProposalID `json:"id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Status          string     `json:"status"`
	VotingStartTime string     `json:"voting_start_time"`
	VotingEndTime   string     `json:"voting_end_time"`
}
