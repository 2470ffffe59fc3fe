package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConsoleOnly(t *testing.T) {
	logger, err := Setup(Options{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Debug("setup smoke test")
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "", RedactURL(""))
	assert.Equal(t,
		"com.tamshai.ai://callback?********",
		RedactURL("com.tamshai.ai://callback?code=abc123&state=xyz"))
	assert.Equal(t, "com.tamshai.ai://home", RedactURL("com.tamshai.ai://home"))
}
