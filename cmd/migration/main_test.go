package main

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Usage(t *testing.T) {
	err := run(nil, logging.NewNop())
	assert.True(t, errors.Is(err, errUsage))
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	err := run([]string{"up"}, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")
}

func TestParseArgs(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)

	version, err := parseVersion(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	_, err = parseVersion("-1")
	assert.Error(t, err)

	_, err = parseTarget("abc")
	assert.Error(t, err)
}

func TestWithPreparedBinaryFlag(t *testing.T) {
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
	assert.Equal(t, "postgres://localhost/cup?sslmode=disable&disable_prepared_binary_result=yes",
		withPreparedBinaryFlag("postgres://localhost/cup?sslmode=disable"))
	assert.Equal(t, "postgres://localhost/cup?disable_prepared_binary_result=yes",
		withPreparedBinaryFlag("postgres://localhost/cup"))

	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")
	assert.Equal(t, "postgres://localhost/cup", withPreparedBinaryFlag("postgres://localhost/cup"))
}
