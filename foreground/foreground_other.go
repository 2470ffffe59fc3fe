//go:build !windows

package foreground

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

type notifyActivator struct {
	logger *zap.Logger
}

func newActivator(logger *zap.Logger) Activator {
	return &notifyActivator{logger: logger}
}

// Activate cannot steal focus on these platforms; post a desktop
// notification as the attention signal instead.
func (a *notifyActivator) Activate(window uintptr) {
	if err := beeep.Notify("Tamshai AI", "Tamshai AI is ready to continue", ""); err != nil {
		a.logger.Debug("attention notification failed", zap.Error(err))
	}
}
