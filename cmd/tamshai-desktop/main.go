package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tamshai-ai-desktop/activation"
	"tamshai-ai-desktop/appctx"
	"tamshai-ai-desktop/auth"
	"tamshai-ai-desktop/bridge"
	"tamshai-ai-desktop/config"
	"tamshai-ai-desktop/dispatch"
	"tamshai-ai-desktop/foreground"
	"tamshai-ai-desktop/handoff"
	"tamshai-ai-desktop/instance"
	"tamshai-ai-desktop/logutil"
	"tamshai-ai-desktop/tokencache"
	"tamshai-ai-desktop/tray"
)

func main() {
	// Ensure DPI awareness before any window metrics are consulted.
	enableDPIAwareness()

	// The main goroutine becomes the UI execution context; pin it to one OS
	// thread so thread-affine broker work never migrates.
	runtime.LockOSThread()

	allowMulti := flag.Bool("allow-multi", false, "Skip single-instance enforcement (debugging only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger, err := logutil.Setup(logutil.Options{
		Level:      cfg.LogLevel,
		EnableFile: cfg.EnableFileLogging,
		LogDir:     cfg.LogDir,
	})
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	slot := handoff.New(cfg.SlotPath, logger)
	url, hasURL := activation.Extract(cfg.Scheme, nil, os.Args)

	role := instance.RolePrimary
	release := instance.ReleaseFunc(func() {})
	if !*allowMulti {
		role, release, err = instance.Acquire(cfg.CoordinationName)
		if err != nil {
			// Coordination is broken; a duplicate session is worse than none,
			// so behave like a secondary without a handoff target.
			logger.Error("instance coordination unavailable, exiting", zap.Error(err))
			os.Exit(1)
		}
	}
	defer release()

	logger.Info("instance role acquired",
		zap.String("role", role.String()),
		zap.String("coordination_name", cfg.CoordinationName))

	if role == instance.RoleSecondary {
		// Hand off the activation payload and exit without showing UI. A
		// failed write is logged and still exits: the only alternative is an
		// unwanted second session.
		if hasURL {
			_ = slot.Write(url)
			logger.Info("handed off deep link to primary",
				zap.String("url", logutil.RedactURL(url)))
		}
		return
	}

	runPrimary(cfg, slot, url, hasURL, logger)
}

func runPrimary(cfg *config.Config, slot *handoff.Slot, url string, hasURL bool, logger *zap.Logger) {
	// Discard any handoff left over from a previous, possibly crashed, run
	// before anyone can poll it.
	slot.ClearStale()

	app := appctx.New()
	if hasURL {
		app.SetInitialURL(url)
		logger.Info("launched via deep link", zap.String("url", logutil.RedactURL(url)))
	}

	// Capture the UI execution context before the session starts; every
	// authenticate call routes through this queue.
	queue := dispatch.NewQueue()
	app.CaptureQueue(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The broker shares the handoff slot with the poll loop below; the
	// pending-aware source recovers callbacks the poller drains first.
	broker := auth.NewBrowserBroker(auth.PendingAwareSource(app, slot.Read, cfg.CallbackURI), logger)
	defer broker.Cancel()
	dispatcher := auth.NewDispatcher(app, broker, cfg.CallbackURI, logger)
	activator := foreground.New(logger)
	tokens := tokencache.New(logger)
	br := bridge.New(app, slot, activator, dispatcher, tokens, cfg.AuthURL, logger)

	trayCfg := tray.Config{
		Title:   cfg.WindowTitle,
		Tooltip: cfg.WindowTitle,
		OnShow:  br.BringToForeground,
		OnExit:  cancel,
	}
	if cfg.AuthURL != "" {
		trayCfg.OnSignIn = func() { go signIn(br, logger) }
	}
	trayIcon := tray.New(trayCfg)
	go trayIcon.Run()
	defer trayIcon.Destroy()

	// Stand-in for the UI layer's polling: drain the handoff slot so a
	// secondary launch reactivates this session.
	go pollCallbacks(ctx, cfg, app, br, logger)

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	logger.Info("primary session started")
	if err := queue.Run(ctx); err != nil && err != context.Canceled {
		logger.Warn("ui queue stopped", zap.Error(err))
	}
}

func signIn(br *bridge.Bridge, logger *zap.Logger) {
	res := <-br.SignIn()
	if res.Err != nil {
		logger.Warn("sign-in did not complete", zap.Error(res.Err))
		return
	}
	logger.Info("sign-in completed",
		zap.String("response", logutil.RedactURL(res.Response)))
}

func pollCallbacks(ctx context.Context, cfg *config.Config, app *appctx.Context, br *bridge.Bridge, logger *zap.Logger) {
	ticker := time.NewTicker(time.Duration(cfg.PollIntervalMS) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if url := br.CheckForCallbackURL(); url != "" {
				// Park the drained URL so a waiting broker flow (or the UI
				// layer's initial-URL poll) can still pick it up.
				app.SetInitialURL(url)
				logger.Info("deep link delivered to session",
					zap.String("url", logutil.RedactURL(url)))
			}
		}
	}
}
