package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorListDecode(t *testing.T) {
	var l OperatorList
	require.NoError(t, l.Decode(" 11, 22 ,,33 "))
	assert.Equal(t, OperatorList{11, 22, 33}, l)
	assert.True(t, l.Contains(22))
	assert.False(t, l.Contains(44))

	assert.Error(t, l.Decode("11,abc"))
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv(Prefix+"_LOG_DEBUG", "true") // set variables win over the file
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"SHOPBOT_BOT_TOKEN=123:abc\n"+
			"SHOPBOT_OPERATORS=10,20\n"+
			"SHOPBOT_LOG_DEBUG=false\n"+
			"SHOPBOT_SESSION_TTL=30m\n"+
			"SHOPBOT_FILES_CHANNEL_ID=-100500\n",
	), 0o600))
	for _, k := range []string{"BOT_TOKEN", "OPERATORS", "SESSION_TTL", "FILES_CHANNEL_ID"} {
		t.Setenv(Prefix+"_"+k, "")
		os.Unsetenv(Prefix + "_" + k)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, OperatorList{10, 20}, cfg.Operators)
	assert.True(t, cfg.LogDebug)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, int64(-100500), cfg.FilesChannelID)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.NoError(t, cfg.RequireBot())
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: "sqlite", SessionBackend: "memory", SendRate: 25}
	require.NoError(t, base.Validate())

	bad := base
	bad.DBDriver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.SessionBackend = "memcached"
	assert.Error(t, bad.Validate())

	bad = base
	bad.WebhookURL = "https://bot.example/telegram/webhook"
	assert.Error(t, bad.Validate(), "webhook without secret")

	assert.Error(t, base.RequireBot())
}
