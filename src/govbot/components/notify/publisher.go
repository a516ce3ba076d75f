package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cosmosnotify/govbot/src/govbot/components/assessment"
	"github.com/cosmosnotify/govbot/src/govbot/components/feed"
	"github.com/cosmosnotify/govbot/src/govbot/components/telegram"
)

// Publisher posts proposal announcements into per-proposal forum topics.
type Publisher struct {
	tg          *telegram.Client
	explorerURL string
}

func NewPublisher(tg *telegram.Client, explorerURL string) *Publisher {
	if explorerURL == "" {
		explorerURL = DefaultExplorerURL
	}
	return &Publisher{tg: tg, explorerURL: explorerURL}
}

// CreateProposalTopic creates a forum topic for the proposal and posts the
// announcement into it. If an assessment is supplied it is posted as a
// follow-up; a failed follow-up is logged and swallowed, the topic and
// primary message stand. Any other failure is returned and the caller must
// not record a thread mapping.
func (p *Publisher) CreateProposalTopic(ctx context.Context, chatID int64, prop feed.Proposal, a *assessment.Assessment) (int64, error) {
	threadID, err := p.tg.CreateForumTopic(ctx, chatID, fmt.Sprintf("Proposal #%d", prop.ID))
	if err != nil {
		return 0, fmt.Errorf("create forum topic for proposal %d: %w", prop.ID, err)
	}

	body, err := FormatProposal(prop, p.explorerURL, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("format proposal %d: %w", prop.ID, err)
	}
	if err := p.tg.SendMessage(ctx, chatID, body, threadID); err != nil {
		return 0, fmt.Errorf("send proposal %d message: %w", prop.ID, err)
	}

	if a != nil {
		if err := p.tg.SendMessage(ctx, chatID, FormatAssessment(*a), threadID); err != nil {
			log.Printf("Error sending AI assessment for proposal %d: %v", prop.ID, err)
		}
	}

	log.Printf("New proposal #%d sent to forum topic %d", prop.ID, threadID)
	return threadID, nil
}

// SendMessage posts a generic follow-up into a channel or topic. Reserved
// for the end-of-voting notice path.
func (p *Publisher) SendMessage(ctx context.Context, chatID int64, text string, threadID int64) error {
	return p.tg.SendMessage(ctx, chatID, text, threadID)
}
