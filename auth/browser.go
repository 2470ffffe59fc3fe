package auth

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tamshai-ai-desktop/appctx"
	"tamshai-ai-desktop/logutil"
)

// CallbackSource yields the next delivered deep-link URL, if any. The
// handoff slot's Read method satisfies it directly.
type CallbackSource func() (string, bool)

// PendingAwareSource combines the handoff slot with the process pending-URL
// slot. The shell's poll loop drains the same one-slot file a waiting broker
// polls and parks what it drains in the pending slot, so a broker reading
// only the file could miss its own callback; this source checks both legs.
// A slot URL that does not carry the callback prefix belongs to the UI layer
// and is parked in the pending slot rather than returned.
func PendingAwareSource(app *appctx.Context, slot CallbackSource, callbackPrefix string) CallbackSource {
	return func() (string, bool) {
		if url, ok := slot(); ok {
			if strings.HasPrefix(url, callbackPrefix) {
				return url, true
			}
			app.SetInitialURL(url)
		}
		if url := app.InitialURL(); url != "" && strings.HasPrefix(url, callbackPrefix) {
			app.ClearInitialURL()
			return url, true
		}
		return "", false
	}
}

// BrowserBroker is the default Broker: it opens the system browser at the
// authorization URL and waits for the callback deep link to arrive through
// the handoff channel. It blocks the UI queue while the flow is in
// progress, which is the intended modality of an interactive broker.
type BrowserBroker struct {
	source     CallbackSource
	openURL    func(string) error
	interval   time.Duration
	cancel     chan struct{}
	cancelOnce sync.Once
	logger     *zap.Logger
}

func NewBrowserBroker(source CallbackSource, logger *zap.Logger) *BrowserBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserBroker{
		source:   source,
		openURL:  OpenBrowser,
		interval: 500 * time.Millisecond,
		cancel:   make(chan struct{}),
		logger:   logger,
	}
}

// Cancel terminates a waiting flow as a user cancellation. Idempotent; the
// shell's quit path and a deferred cleanup may both call it.
func (b *BrowserBroker) Cancel() {
	b.cancelOnce.Do(func() { close(b.cancel) })
}

// Authenticate opens the browser and polls the callback source until a URL
// with the callback prefix arrives. There is no deadline: the flow ends when
// the callback lands, the flow is cancelled, or the browser never launched.
func (b *BrowserBroker) Authenticate(authURL, callbackURL string) Outcome {
	if err := b.openURL(authURL); err != nil {
		b.logger.Warn("failed to open browser for authentication", zap.Error(err))
		return Outcome{Status: StatusUnknown}
	}
	b.logger.Info("authentication flow started in browser",
		zap.String("auth_url", logutil.RedactURL(authURL)))

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-b.cancel:
			return Outcome{Status: StatusUserCancel}
		case <-ticker.C:
			url, ok := b.source()
			if !ok {
				continue
			}
			if strings.HasPrefix(url, callbackURL) {
				return Outcome{Status: StatusSuccess, ResponseData: url}
			}
			b.logger.Warn("discarding delivered URL that does not match the callback",
				zap.String("url", logutil.RedactURL(url)))
		}
	}
}

// OpenBrowser opens the default web browser at url using the platform
// launcher (xdg-open on Linux, rundll32 on Windows, open on macOS).
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}
