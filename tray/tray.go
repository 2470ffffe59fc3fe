// Package tray shows the resident primary instance in the system tray.
package tray

import (
	"github.com/getlantern/systray"
)

type Config struct {
	Title   string
	Tooltip string
	// OnShow is fired when the user picks the Show item; wired to
	// foreground activation by the shell.
	OnShow func()
	// OnSignIn starts an interactive auth flow. Hidden when nil.
	OnSignIn func()
	OnExit   func()
}

type Tray struct {
	cfg Config
}

func New(cfg Config) *Tray {
	return &Tray{cfg: cfg}
}

// Run starts the systray loop. Blocks until Destroy or the Quit item.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Destroy stops the systray loop.
func (t *Tray) Destroy() {
	systray.Quit()
}

// UpdateTooltip replaces the hover text, e.g. to reflect auth status.
func (t *Tray) UpdateTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

func (t *Tray) onReady() {
	systray.SetTitle(t.cfg.Title)
	systray.SetTooltip(t.cfg.Tooltip)

	mShow := systray.AddMenuItem("Show", "Bring the window to the front")
	var mSignIn *systray.MenuItem
	if t.cfg.OnSignIn != nil {
		mSignIn = systray.AddMenuItem("Sign in", "Sign in through the browser")
	}
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	// Receiving on a nil channel blocks forever, so a hidden sign-in item
	// never fires its case.
	var signInClicks <-chan struct{}
	if mSignIn != nil {
		signInClicks = mSignIn.ClickedCh
	}

	go func() {
		for {
			select {
			case <-mShow.ClickedCh:
				if t.cfg.OnShow != nil {
					t.cfg.OnShow()
				}
			case <-signInClicks:
				t.cfg.OnSignIn()
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	if t.cfg.OnExit != nil {
		t.cfg.OnExit()
	}
}
