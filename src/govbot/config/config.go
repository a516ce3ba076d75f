package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const defaultNotifyDelay = 10 * time.Second

// Config is the persisted state document. It is the single source of truth
// for credentials, endpoints, and the notification high-water marks; callers
// load-modify-save it as a unit.
type Config struct {
	AIToken             string           `json:"aiToken"`
	AIModel             string           `json:"aiModel"`
	TelegramToken       string           `json:"telegramToken"`
	ProposalsAPI        string           `json:"proposalsApi"`
	GovernanceChannelID int64            `json:"governanceChannelId"`
	Ready               bool             `json:"ready"`
	LastNewProposalID   uint64           `json:"lastNewProposalId"`
	LastEndProposalID   uint64           `json:"lastEndProposalId"`
	ProposalThreads     map[string]int64 `json:"proposalThreads"`

	// Optional keys; absent in older state files.
	RedisURL           string `json:"redisUrl,omitempty"`
	ExplorerURL        string `json:"explorerUrl,omitempty"`
	NotifyDelaySeconds *int   `json:"notifyDelaySeconds,omitempty"`
}

// Load reads and parses the state file. Callers treat failure as fatal at
// startup; mid-run callers surface it per proposal.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.ProposalThreads == nil {
		cfg.ProposalThreads = make(map[string]int64)
	}
	return &cfg, nil
}

// Save writes the full document back, overwriting the file. Indented so
// hand-edited files stay diffable.
func (c *Config) Save(path string) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// NotifyDelay returns the pause between notifications, defaulting to 10s
// when the key is absent.
func (c *Config) NotifyDelay() time.Duration {
	if c.NotifyDelaySeconds == nil {
		return defaultNotifyDelay
	}
	return time.Duration(*c.NotifyDelaySeconds) * time.Second
}
