package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatID(t *testing.T) {
	id, err := (&Config{TelegramChatID: "123456789"}).ChatID()
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), id)

	// Group chats have negative ids.
	id, err = (&Config{TelegramChatID: "-100200300"}).ChatID()
	require.NoError(t, err)
	assert.Equal(t, int64(-100200300), id)

	_, err = (&Config{}).ChatID()
	assert.Error(t, err)

	_, err = (&Config{TelegramChatID: "not-a-number"}).ChatID()
	assert.Error(t, err)
}

func TestLoadDefaultsStatusFile(t *testing.T) {
	t.Setenv("STATUS_FILE", "")
	assert.Equal(t, "status.json", Load().StatusFile)

	t.Setenv("STATUS_FILE", "/var/lib/librarywatch/status.json")
	assert.Equal(t, "/var/lib/librarywatch/status.json", Load().StatusFile)
}
