package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cosmosnotify/govbot/src/govbot/components/feed"
)

const channel = "govbot:proposals"

// Publisher broadcasts notification events on redis for other consumers.
type Publisher struct {
	rdb *redis.Client
}

func Connect(url string) (*Publisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Publisher{rdb: redis.NewClient(opt)}, nil
}

// ProposalNotified publishes one event per announced proposal.
func (p *Publisher) ProposalNotified(ctx context.Context, prop feed.Proposal, threadID int64) error {
	payload, err := json.Marshal(map[string]interface{}{
		"proposal": uint64(prop.ID),
		"title":    prop.Title,
		"status":   prop.Status,
		"thread":   threadID,
		"time":     time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, channel, payload).Err()
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}
