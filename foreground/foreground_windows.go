//go:build windows

package foreground

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procIsIconic                 = user32.NewProc("IsIconic")
	procShowWindow               = user32.NewProc("ShowWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procFlashWindowEx            = user32.NewProc("FlashWindowEx")
)

const (
	swRestore       = 9
	flashwTray      = 0x00000002
	flashwTimerNoFG = 0x0000000C
)

type flashWInfo struct {
	cbSize    uint32
	hwnd      windows.Handle
	dwFlags   uint32
	uCount    uint32
	dwTimeout uint32
}

type winActivator struct {
	logger *zap.Logger
}

func newActivator(logger *zap.Logger) Activator {
	return &winActivator{logger: logger}
}

// Activate restores the window if minimized and claims foreground focus.
// Claiming focus from another process requires temporarily attaching this
// thread's input queue to the current foreground owner's; the detach runs on
// every exit path so the queues are never left cross-linked. When the claim
// is refused, the taskbar button is flashed instead.
func (a *winActivator) Activate(window uintptr) {
	if window == 0 {
		a.logger.Debug("foreground activation skipped, no window handle")
		return
	}

	if iconic, _, _ := procIsIconic.Call(window); iconic != 0 {
		_, _, _ = procShowWindow.Call(window, swRestore)
	}

	if a.claimForeground(window) {
		a.logger.Debug("window brought to foreground")
		return
	}

	a.flashTaskbar(window)
}

func (a *winActivator) claimForeground(window uintptr) bool {
	fg, _, _ := procGetForegroundWindow.Call()
	cur := uintptr(windows.GetCurrentThreadId())

	attached := false
	var fgThread uintptr
	if fg != 0 && fg != window {
		fgThread, _, _ = procGetWindowThreadProcessId.Call(fg, 0)
		if fgThread != 0 && fgThread != cur {
			r, _, _ := procAttachThreadInput.Call(cur, fgThread, 1)
			attached = r != 0
		}
	}
	if attached {
		defer procAttachThreadInput.Call(cur, fgThread, 0)
	}

	ok, _, _ := procSetForegroundWindow.Call(window)
	return ok != 0
}

func (a *winActivator) flashTaskbar(window uintptr) {
	info := flashWInfo{
		cbSize:  uint32(unsafe.Sizeof(flashWInfo{})),
		hwnd:    windows.Handle(window),
		dwFlags: flashwTray | flashwTimerNoFG,
		uCount:  3,
	}
	_, _, _ = procFlashWindowEx.Call(uintptr(unsafe.Pointer(&info)))
	a.logger.Debug("foreground claim refused, flashed taskbar instead")
}
