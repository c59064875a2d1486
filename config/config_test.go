package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"NAME":    "checkmate",
		"PORT":    "8080",
		"ENABLED": "false",
		"TIMEOUT": "90",
		"JUNK":    "not-a-number",
	}

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "checkmate", GetString(cfg, "NAME", "fallback"))
		assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))
		assert.Equal(t, "fallback", GetString(nil, "NAME", "fallback"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 8080, GetInt(cfg, "PORT", 1))
		assert.Equal(t, 1, GetInt(cfg, "MISSING", 1))
		assert.Equal(t, 1, GetInt(cfg, "JUNK", 1))
	})

	t.Run("bool", func(t *testing.T) {
		assert.False(t, GetBool(cfg, "ENABLED", true))
		assert.True(t, GetBool(cfg, "MISSING", true))
		assert.True(t, GetBool(cfg, "JUNK", true))
	})

	t.Run("seconds", func(t *testing.T) {
		assert.Equal(t, 90*time.Second, GetSeconds(cfg, "TIMEOUT", time.Minute))
		assert.Equal(t, time.Minute, GetSeconds(cfg, "MISSING", time.Minute))
		assert.Equal(t, time.Minute, GetSeconds(cfg, "JUNK", time.Minute))
	})
}
