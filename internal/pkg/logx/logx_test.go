package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Production(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Environment: Production, Output: &buf})
	t.Cleanup(func() { Init() })

	Debug().Msg("hidden")
	Info().Int("page", 2).Msg("page fetched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "page fetched", entry["message"])
	assert.EqualValues(t, 2, entry["page"])
}

func TestInit_Development(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Environment: Development, Output: &buf})
	t.Cleanup(func() { Init() })

	Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
