// Package auth marshals interactive broker authentication onto the UI
// execution context and reports outcomes through per-request promises.
package auth

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tamshai-ai-desktop/appctx"
	"tamshai-ai-desktop/dispatch"
	"tamshai-ai-desktop/logutil"
)

// Dispatcher routes every broker call through the captured UI execution
// context. Concurrent Authenticate calls each get an independent promise;
// the shared single-threaded queue serializes their execution in FIFO order
// and never supersedes an in-flight flow. There is no timeout: a request
// resolves only when the broker flow itself terminates.
type Dispatcher struct {
	app         *appctx.Context
	broker      Broker
	callbackURI string
	logger      *zap.Logger
}

func NewDispatcher(app *appctx.Context, broker Broker, callbackURI string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{app: app, broker: broker, callbackURI: callbackURI, logger: logger}
}

// Authenticate packages one broker flow as a task on the UI queue and
// returns the promise for its outcome. If no execution context is available
// the promise rejects immediately with dispatch.ErrDispatcherUnavailable;
// the broker is never invoked off the required thread.
func (d *Dispatcher) Authenticate(authURL, callbackURL string) <-chan Result {
	ch := make(chan Result, 1)
	reqID := uuid.NewString()

	exec, err := dispatch.Resolve(d.app.Queue())
	if err != nil {
		d.logger.Warn("authenticate rejected, no ui execution context",
			zap.String("request_id", reqID))
		ch <- Result{Err: err}
		return ch
	}

	d.logger.Debug("authenticate dispatched",
		zap.String("request_id", reqID),
		zap.String("auth_url", logutil.RedactURL(authURL)))

	submitted := dispatch.SubmitWithAbort(exec, func() {
		out := d.broker.Authenticate(authURL, callbackURL)
		d.logger.Info("authenticate resolved",
			zap.String("request_id", reqID),
			zap.String("status", out.Status.String()))
		ch <- mapOutcome(out)
	}, func() {
		// Accepted but never started: the queue shut down first.
		d.logger.Warn("authenticate aborted, ui queue stopped",
			zap.String("request_id", reqID))
		ch <- Result{Err: dispatch.ErrDispatcherUnavailable}
	})
	if !submitted {
		d.logger.Warn("authenticate rejected, ui queue not accepting work",
			zap.String("request_id", reqID))
		ch <- Result{Err: dispatch.ErrDispatcherUnavailable}
	}
	return ch
}

// CallbackIdentifier reports the application's registered callback address.
// A read-only query, but dispatched through the same queue for the same
// thread-affinity reason as Authenticate.
func (d *Dispatcher) CallbackIdentifier() <-chan StringResult {
	ch := make(chan StringResult, 1)

	exec, err := dispatch.Resolve(d.app.Queue())
	if err != nil {
		ch <- StringResult{Err: err}
		return ch
	}

	uri := d.callbackURI
	submitted := dispatch.SubmitWithAbort(exec,
		func() { ch <- StringResult{Value: uri} },
		func() { ch <- StringResult{Err: dispatch.ErrDispatcherUnavailable} },
	)
	if !submitted {
		ch <- StringResult{Err: dispatch.ErrDispatcherUnavailable}
	}
	return ch
}

// CallbackURI returns the registered callback address without dispatching.
// The shell uses it to compose auth requests; UI-layer queries go through
// CallbackIdentifier instead.
func (d *Dispatcher) CallbackURI() string { return d.callbackURI }
