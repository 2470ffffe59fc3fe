// Package bridge is the narrow surface the application shell (the UI layer)
// calls into: initial-URL polling, IPC slot draining, foreground activation,
// and the async auth operations. It owns no state of its own; everything
// lives in the app context and the collaborators passed at construction.
package bridge

import (
	"errors"

	"go.uber.org/zap"

	"tamshai-ai-desktop/appctx"
	"tamshai-ai-desktop/auth"
	"tamshai-ai-desktop/foreground"
	"tamshai-ai-desktop/handoff"
	"tamshai-ai-desktop/logutil"
	"tamshai-ai-desktop/tokencache"
)

// ErrNoAuthURL reports a SignIn attempt with no authorization endpoint
// configured.
var ErrNoAuthURL = errors.New("no authorization URL configured")

type Bridge struct {
	app        *appctx.Context
	slot       *handoff.Slot
	activator  foreground.Activator
	dispatcher *auth.Dispatcher
	tokens     *tokencache.Cache
	authURL    string
	logger     *zap.Logger
}

func New(app *appctx.Context, slot *handoff.Slot, activator foreground.Activator,
	dispatcher *auth.Dispatcher, tokens *tokencache.Cache, authURL string, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		app:        app,
		slot:       slot,
		activator:  activator,
		dispatcher: dispatcher,
		tokens:     tokens,
		authURL:    authURL,
		logger:     logger,
	}
}

// GetInitialURL returns the deep-link URL that launched this process, or ""
// when there is none. It does not consume the value; callers clear it
// explicitly with ClearInitialURL once handled.
func (b *Bridge) GetInitialURL() string {
	return b.app.InitialURL()
}

// ClearInitialURL is the explicit consume step after GetInitialURL.
func (b *Bridge) ClearInitialURL() {
	b.app.ClearInitialURL()
}

// CheckForCallbackURL drains the IPC handoff slot. When a secondary instance
// has handed off a URL, it is returned exactly once and the primary's window
// is brought to the foreground as part of the same handoff.
func (b *Bridge) CheckForCallbackURL() string {
	url, ok := b.slot.Read()
	if !ok {
		return ""
	}
	b.logger.Info("handoff URL received", zap.String("url", logutil.RedactURL(url)))
	b.activator.Activate(b.app.Window())
	return url
}

// BringToForeground surfaces the primary window. Best-effort.
func (b *Bridge) BringToForeground() {
	b.activator.Activate(b.app.Window())
}

// CallbackURI resolves asynchronously with the registered callback address.
func (b *Bridge) CallbackURI() <-chan auth.StringResult {
	return b.dispatcher.CallbackIdentifier()
}

// Authenticate starts an interactive auth flow on the UI execution context.
// A successful response is additionally persisted to the token cache before
// the promise resolves; cache failures are logged and do not reject the
// promise.
func (b *Bridge) Authenticate(authURL, callbackURL string) <-chan auth.Result {
	inner := b.dispatcher.Authenticate(authURL, callbackURL)
	if b.tokens == nil {
		return inner
	}

	out := make(chan auth.Result, 1)
	go func() {
		res := <-inner
		if res.Err == nil && res.Response != "" {
			_ = b.tokens.StoreResponse(res.Response)
		}
		out <- res
	}()
	return out
}

// SignIn starts an interactive auth flow against the configured
// authorization endpoint, using the registered callback address. The tray's
// sign-in action calls this; embedders that compose their own URLs use
// Authenticate directly.
func (b *Bridge) SignIn() <-chan auth.Result {
	if b.authURL == "" {
		ch := make(chan auth.Result, 1)
		ch <- auth.Result{Err: ErrNoAuthURL}
		return ch
	}
	return b.Authenticate(b.authURL, b.dispatcher.CallbackURI())
}
