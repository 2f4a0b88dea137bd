package script

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finquery/finquery/internal/config"
	"github.com/finquery/finquery/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsStdout(t *testing.T) {
	r := NewRunner(config.ScriptsConfig{
		Analyze: config.ScriptConfig{Command: []string{"sh", "-c", "printf hello"}, Timeout: 5 * time.Second},
	}, nil, nil)

	out, err := r.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunPassesExtraArgs(t *testing.T) {
	r := NewRunner(config.ScriptsConfig{
		Portfolio: config.ScriptConfig{Command: []string{"sh", "-c", `printf '%s' "$1"`, "argv0"}, Timeout: 5 * time.Second},
	}, nil, nil)

	out, err := r.Portfolio(context.Background(), "show")
	require.NoError(t, err)
	assert.Equal(t, "show", out)
}

func TestRunSurfacesStderr(t *testing.T) {
	r := NewRunner(config.ScriptsConfig{
		Analyze: config.ScriptConfig{Command: []string{"sh", "-c", "echo broken >&2; exit 3"}, Timeout: 5 * time.Second},
	}, nil, nil)

	_, err := r.Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrScriptFailed))
	assert.Contains(t, err.Error(), "broken")
}

func TestRunTimesOut(t *testing.T) {
	r := NewRunner(config.ScriptsConfig{
		Analyze: config.ScriptConfig{Command: []string{"sleep", "5"}, Timeout: 100 * time.Millisecond},
	}, nil, nil)

	_, err := r.Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrScriptTimeout))
}

func TestRunRejectsEmptyCommand(t *testing.T) {
	r := NewRunner(config.ScriptsConfig{}, nil, nil)

	_, err := r.Analyze(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrScriptFailed))
}
