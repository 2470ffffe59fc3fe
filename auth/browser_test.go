package auth

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tamshai-ai-desktop/appctx"
)

func newTestBrowserBroker(source CallbackSource) *BrowserBroker {
	b := NewBrowserBroker(source, nil)
	b.openURL = func(string) error { return nil }
	b.interval = 5 * time.Millisecond
	return b
}

func TestBrowserBrokerSuccess(t *testing.T) {
	var mu sync.Mutex
	pending := ""
	b := newTestBrowserBroker(func() (string, bool) {
		mu.Lock()
		defer mu.Unlock()
		if pending == "" {
			return "", false
		}
		u := pending
		pending = ""
		return u, true
	})

	done := make(chan Outcome, 1)
	go func() {
		done <- b.Authenticate("https://idp.example/authorize", "com.tamshai.ai://callback")
	}()

	// Callback lands after the flow started.
	time.Sleep(15 * time.Millisecond)
	mu.Lock()
	pending = "com.tamshai.ai://callback?code=abc123"
	mu.Unlock()

	select {
	case out := <-done:
		assert.Equal(t, StatusSuccess, out.Status)
		assert.Equal(t, "com.tamshai.ai://callback?code=abc123", out.ResponseData)
	case <-time.After(2 * time.Second):
		t.Fatal("broker never terminated")
	}
}

func TestBrowserBrokerCancel(t *testing.T) {
	b := newTestBrowserBroker(func() (string, bool) { return "", false })

	done := make(chan Outcome, 1)
	go func() {
		done <- b.Authenticate("https://idp.example/authorize", "com.tamshai.ai://callback")
	}()
	b.Cancel()

	select {
	case out := <-done:
		assert.Equal(t, StatusUserCancel, out.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("broker never terminated")
	}
}

func TestBrowserBrokerCancelTwice(t *testing.T) {
	b := newTestBrowserBroker(func() (string, bool) { return "", false })

	done := make(chan Outcome, 1)
	go func() {
		done <- b.Authenticate("https://idp.example/authorize", "com.tamshai.ai://callback")
	}()
	b.Cancel()
	b.Cancel()

	select {
	case out := <-done:
		assert.Equal(t, StatusUserCancel, out.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("broker never terminated")
	}
}

func TestBrowserBrokerOpenFailure(t *testing.T) {
	b := newTestBrowserBroker(func() (string, bool) { return "", false })
	b.openURL = func(string) error { return errors.New("no browser") }

	out := b.Authenticate("https://idp.example/authorize", "com.tamshai.ai://callback")
	assert.Equal(t, StatusUnknown, out.Status)
}

func TestBrowserBrokerIgnoresForeignURL(t *testing.T) {
	urls := []string{"com.tamshai.ai://settings", "com.tamshai.ai://callback?code=real"}
	var mu sync.Mutex
	b := newTestBrowserBroker(func() (string, bool) {
		mu.Lock()
		defer mu.Unlock()
		if len(urls) == 0 {
			return "", false
		}
		u := urls[0]
		urls = urls[1:]
		return u, true
	})

	out := b.Authenticate("https://idp.example/authorize", "com.tamshai.ai://callback")
	require.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, "com.tamshai.ai://callback?code=real", out.ResponseData)
}

func TestPendingAwareSourceReadsSlot(t *testing.T) {
	app := appctx.New()
	slot := queuedSource("com.tamshai.ai://callback?code=s1")
	src := PendingAwareSource(app, slot, "com.tamshai.ai://callback")

	url, ok := src()
	require.True(t, ok)
	assert.Equal(t, "com.tamshai.ai://callback?code=s1", url)

	_, ok = src()
	assert.False(t, ok)
}

func TestPendingAwareSourceParksForeignSlotURL(t *testing.T) {
	app := appctx.New()
	slot := queuedSource("com.tamshai.ai://settings")
	src := PendingAwareSource(app, slot, "com.tamshai.ai://callback")

	_, ok := src()
	assert.False(t, ok, "a non-callback URL belongs to the UI layer")
	assert.Equal(t, "com.tamshai.ai://settings", app.InitialURL(),
		"a non-callback URL must be parked, not dropped")
}

func TestPendingAwareSourceConsumesParkedCallback(t *testing.T) {
	app := appctx.New()
	// The shell poller drained the slot first and parked the URL.
	app.SetInitialURL("com.tamshai.ai://callback?code=parked")
	src := PendingAwareSource(app, func() (string, bool) { return "", false }, "com.tamshai.ai://callback")

	url, ok := src()
	require.True(t, ok)
	assert.Equal(t, "com.tamshai.ai://callback?code=parked", url)
	assert.Empty(t, app.InitialURL(), "consuming the parked callback must clear the slot")
}

func TestPendingAwareSourceLeavesForeignPendingURL(t *testing.T) {
	app := appctx.New()
	app.SetInitialURL("com.tamshai.ai://settings")
	src := PendingAwareSource(app, func() (string, bool) { return "", false }, "com.tamshai.ai://callback")

	_, ok := src()
	assert.False(t, ok)
	assert.Equal(t, "com.tamshai.ai://settings", app.InitialURL(),
		"a pending URL for the UI layer must stay untouched")
}

// A callback drained by the shell's poll loop while a flow is waiting still
// reaches the broker through the pending slot.
func TestBrowserBrokerResolvesCallbackDrainedByPoller(t *testing.T) {
	app := appctx.New()
	b := newTestBrowserBroker(PendingAwareSource(app, func() (string, bool) { return "", false }, "com.tamshai.ai://callback"))

	done := make(chan Outcome, 1)
	go func() {
		done <- b.Authenticate("https://idp.example/authorize", "com.tamshai.ai://callback")
	}()

	time.Sleep(15 * time.Millisecond)
	app.SetInitialURL("com.tamshai.ai://callback?code=via-poller")

	select {
	case out := <-done:
		require.Equal(t, StatusSuccess, out.Status)
		assert.Equal(t, "com.tamshai.ai://callback?code=via-poller", out.ResponseData)
	case <-time.After(2 * time.Second):
		t.Fatal("broker never saw the parked callback")
	}
	assert.Empty(t, app.InitialURL())
}

// queuedSource yields url once, then reports empty.
func queuedSource(url string) CallbackSource {
	var mu sync.Mutex
	return func() (string, bool) {
		mu.Lock()
		defer mu.Unlock()
		if url == "" {
			return "", false
		}
		u := url
		url = ""
		return u, true
	}
}
