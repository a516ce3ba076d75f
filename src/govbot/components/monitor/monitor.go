package monitor

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/cosmosnotify/govbot/src/govbot/components/assessment"
	"github.com/cosmosnotify/govbot/src/govbot/components/feed"
	"github.com/cosmosnotify/govbot/src/govbot/config"
)

// Feed lists current proposals.
type Feed interface {
	Fetch(ctx context.Context) ([]feed.Proposal, error)
}

// Assessor rates a proposal summary.
type Assessor interface {
	Assess(ctx context.Context, summary string) (*assessment.Assessment, error)
}

// Publisher announces a proposal in the governance chat and returns the
// created thread id.
type Publisher interface {
	CreateProposalTopic(ctx context.Context, chatID int64, p feed.Proposal, a *assessment.Assessment) (int64, error)
}

// Events receives a notification event per announced proposal. Optional.
type Events interface {
	ProposalNotified(ctx context.Context, p feed.Proposal, threadID int64) error
}

// Monitor runs the new-proposal check cycle. The state file is the only
// shared resource; it is load-modify-saved at each persistence point, so a
// crash mid-run never loses already-announced proposals.
type Monitor struct {
	configPath string
	feed       Feed
	assessor   Assessor
	publisher  Publisher
	events     Events
}

func New(configPath string, f Feed, a Assessor, p Publisher, ev Events) *Monitor {
	return &Monitor{
		configPath: configPath,
		feed:       f,
		assessor:   a,
		publisher:  p,
		events:     ev,
	}
}

// RunCycle performs one pass: load state, fetch the feed, announce every
// voting-period proposal above the high-water mark in ascending id order,
// then write back the advanced marks. Per-proposal failures are logged and
// the cycle continues; a feed outage ends the cycle without mutating state.
func (m *Monitor) RunCycle(ctx context.Context) error {
	cfg, err := config.Load(m.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Ready {
		log.Printf("Config not ready, skipping cycle")
		return nil
	}

	proposals, err := m.feed.Fetch(ctx)
	if err != nil {
		log.Printf("Error fetching proposals: %v", err)
		return nil
	}
	if len(proposals) == 0 {
		return nil
	}

	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].ID < proposals[j].ID
	})

	lastNewID := cfg.LastNewProposalID
	lastEndID := cfg.LastEndProposalID
	highestNewID := lastNewID
	highestEndID := lastEndID
	delay := cfg.NotifyDelay()

	for _, p := range proposals {
		id := uint64(p.ID)
		if id <= lastNewID || p.Status != feed.StatusVotingPeriod {
			continue
		}

		if err := m.notifyNewProposal(ctx, cfg.GovernanceChannelID, p); err != nil {
			log.Printf("Error processing proposal %d: %v", id, err)
			continue
		}

		if id > highestNewID {
			highestNewID = id
		}

		// Crude rate limit against the chat platform.
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	if highestNewID > lastNewID || highestEndID > lastEndID {
		// Reload so thread mappings written during the loop are kept.
		cfg, err = config.Load(m.configPath)
		if err != nil {
			return fmt.Errorf("reload config: %w", err)
		}
		if highestNewID > cfg.LastNewProposalID {
			cfg.LastNewProposalID = highestNewID
		}
		if highestEndID > cfg.LastEndProposalID {
			cfg.LastEndProposalID = highestEndID
		}
		if err := cfg.Save(m.configPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	return nil
}

// notifyNewProposal assesses, publishes, and persists the thread mapping
// plus the advanced high-water mark for one proposal. A failed assessment
// degrades the announcement; a failed publish fails the proposal and
// nothing is persisted for it.
func (m *Monitor) notifyNewProposal(ctx context.Context, chatID int64, p feed.Proposal) error {
	summary := p.Summary
	if summary == "" {
		summary = "No summary available"
	}

	var a *assessment.Assessment
	if m.assessor != nil {
		result, err := m.assessor.Assess(ctx, summary)
		if err != nil {
			log.Printf("Error fetching AI assessment for proposal %d: %v", p.ID, err)
		} else {
			a = result
		}
	}

	threadID, err := m.publisher.CreateProposalTopic(ctx, chatID, p, a)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	cfg, err := config.Load(m.configPath)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	// Persist the thread mapping and the advanced mark together, so a
	// crash before the end of the cycle cannot re-announce this proposal.
	cfg.ProposalThreads[strconv.FormatUint(uint64(p.ID), 10)] = threadID
	if uint64(p.ID) > cfg.LastNewProposalID {
		cfg.LastNewProposalID = uint64(p.ID)
	}
	if err := cfg.Save(m.configPath); err != nil {
		return fmt.Errorf("save thread mapping: %w", err)
	}

	if m.events != nil {
		if err := m.events.ProposalNotified(ctx, p, threadID); err != nil {
			log.Printf("Error publishing notification event for proposal %d: %v", p.ID, err)
		}
	}

	return nil
}
