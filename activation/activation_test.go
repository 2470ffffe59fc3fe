package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const scheme = "com.tamshai.ai://"

func TestExtractFromCommandLine(t *testing.T) {
	url, found := Extract(scheme, nil, []string{"app.exe", "com.tamshai.ai://callback?code=abc123"})
	assert.True(t, found)
	assert.Equal(t, "com.tamshai.ai://callback?code=abc123", url)
}

func TestExtractNoMatch(t *testing.T) {
	_, found := Extract(scheme, nil, []string{"app.exe"})
	assert.False(t, found)

	_, found = Extract(scheme, nil, nil)
	assert.False(t, found)
}

func TestExtractCaseSensitive(t *testing.T) {
	_, found := Extract(scheme, nil, []string{"app.exe", "COM.TAMSHAI.AI://callback"})
	assert.False(t, found)
}

func TestExtractStructuredEventWins(t *testing.T) {
	event := &Event{Kind: KindProtocol, URI: "com.tamshai.ai://callback?code=fromevent"}
	url, found := Extract(scheme, event, []string{"app.exe", "com.tamshai.ai://callback?code=fromargs"})
	assert.True(t, found)
	assert.Equal(t, "com.tamshai.ai://callback?code=fromevent", url)
}

func TestExtractMalformedEventFallsBack(t *testing.T) {
	// Protocol activation with an empty URI must degrade, not fault.
	event := &Event{Kind: KindProtocol}
	url, found := Extract(scheme, event, []string{"app.exe", "com.tamshai.ai://callback?code=fromargs"})
	assert.True(t, found)
	assert.Equal(t, "com.tamshai.ai://callback?code=fromargs", url)
}

func TestExtractLaunchEventIgnored(t *testing.T) {
	event := &Event{Kind: KindLaunch, URI: "com.tamshai.ai://should-not-be-used"}
	_, found := Extract(scheme, event, []string{"app.exe"})
	assert.False(t, found)
}

func TestExtractPrefixEmbeddedInArg(t *testing.T) {
	// Windows hands secondaries the whole command line as one string; the
	// URL is the tail starting at the scheme.
	url, found := Extract(scheme, nil, []string{`"C:\app.exe" com.tamshai.ai://callback?code=x`})
	assert.True(t, found)
	assert.Equal(t, "com.tamshai.ai://callback?code=x", url)
}
