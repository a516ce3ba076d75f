package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := &Config{
		AIToken:             "ai-key",
		AIModel:             "gemini-2.0-flash",
		TelegramToken:       "tg-token",
		ProposalsAPI:        "https://example.com/proposals",
		GovernanceChannelID: -100123,
		Ready:               true,
		LastNewProposalID:   42,
		LastEndProposalID:   7,
		ProposalThreads:     map[string]int64{"42": 900},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInitializesThreadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ready":true}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.ProposalThreads)

	cfg.ProposalThreads["1"] = 2
	assert.Equal(t, int64(2), cfg.ProposalThreads["1"])
}

func TestNotifyDelay(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 10*time.Second, cfg.NotifyDelay())

	zero := 0
	cfg.NotifyDelaySeconds = &zero
	assert.Equal(t, time.Duration(0), cfg.NotifyDelay())

	three := 3
	cfg.NotifyDelaySeconds = &three
	assert.Equal(t, 3*time.Second, cfg.NotifyDelay())
}
