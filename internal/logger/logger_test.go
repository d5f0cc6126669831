package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	testCases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			log := NewWithWriter(&bytes.Buffer{}, tc.level)
			assert.Equal(t, tc.expected, log.GetLevel())
		})
	}
}

func TestNewWithWriterWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Debug().Msg("hidden")
	log.Info().Str("room_id", "room-1").Msg("roll submitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "roll submitted", entry["message"])
	assert.Equal(t, "room-1", entry["room_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "caller")
}
