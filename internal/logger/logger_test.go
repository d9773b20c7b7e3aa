package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New("debug", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log, err = New("", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	_, err = New("loud", FormatJSON)
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New("info", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Msg("test message")
	assert.Contains(t, buf.String(), "test message")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)

	lvl, err = ParseLevel("trace")
	require.NoError(t, err)
	assert.Equal(t, zerolog.TraceLevel, lvl)
}

func TestLeveled(t *testing.T) {
	var buf bytes.Buffer
	l := NewLeveled(NewWithWriter(&buf))

	l.Infof("checked %d", 3)
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"message":"checked 3"`)

	buf.Reset()
	l.Warnf("* %s vs %s", "1 USD", "2 USD")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"message":"* 1 USD vs 2 USD"`)
}
