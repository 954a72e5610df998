package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/dashkit/errors"
	"github.com/kochabx/dashkit/log/desensitize"
	"github.com/kochabx/dashkit/log/writer"
)

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, WithLevel(zerolog.InfoLevel), WithField("app", "dashkit"))

	logger.Debug().Msg("hidden")
	logger.Warn().Err(errors.Application(404, "Unable to fetch /x: not found")).Str("path", "/x").Msg("fetch failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"app":"dashkit"`)
	assert.Contains(t, out, `"path":"/x"`)
	assert.Contains(t, out, "kind=application")
}

func TestDesensitizedLog(t *testing.T) {
	var buf bytes.Buffer
	hook := desensitize.NewHook()
	hook.AddBuiltin(desensitize.BuiltinRules()...)
	logger := NewWriter(&buf, WithDesensitize(hook), WithLevel(zerolog.InfoLevel))

	logger.Info().Str("phone", "555-010-2030").Str("email", "jane.roe@example.com").Msg("survey submitted")
	logger.Debug().Msg("still filtered after rebuild")

	out := buf.String()
	assert.Contains(t, out, "***-***-2030")
	assert.Contains(t, out, "j***e@example.com")
	assert.NotContains(t, out, "jane.roe")
	assert.NotContains(t, out, "still filtered")
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()

	logger, err := FromConfig(Config{
		Level:  "debug",
		Output: OutputFile,
		File: FileConfig{
			Filepath:   dir,
			Filename:   "test",
			RotateMode: writer.RotateModeSize,
		},
	})
	require.NoError(t, err)
	logger.Info().Msg("to file")
	require.NoError(t, logger.Close())

	matches, _ := filepath.Glob(filepath.Join(dir, "test.log"))
	assert.Len(t, matches, 1)

	_, err = FromConfig(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestGlobalLog(t *testing.T) {
	var buf bytes.Buffer
	prev := G
	defer SetGlobalLogger(prev)

	SetGlobalLogger(NewWriter(&buf))
	SetGlobalLevel(zerolog.WarnLevel)
	Info().Msg("dropped")
	Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
