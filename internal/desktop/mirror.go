// Package desktop mirrors important toasts to the OS notification centre,
// so failures are noticed while the terminal is in the background.
package desktop

import (
	"log/slog"
	"sync"

	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/gen2brain/beeep"
)

const appName = "Eureka"

// Sender delivers OS notifications. Alert also plays a sound.
type Sender interface {
	Notify(title, body string) error
	Alert(title, body string) error
}

type beeepSender struct{}

func (beeepSender) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

func (beeepSender) Alert(title, body string) error {
	return beeep.Alert(title, body, "")
}

// Beeep returns the sender backed by the OS.
func Beeep() Sender {
	return beeepSender{}
}

// Mirror forwards error and warning toasts to a Sender. Delivery happens off
// the UI goroutine; failures are logged and otherwise ignored.
type Mirror struct {
	sender Sender
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewMirror(sender Sender, logger *slog.Logger) *Mirror {
	if sender == nil {
		sender = Beeep()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{sender: sender, logger: logger}
}

// Forward is a toast observer.
func (m *Mirror) Forward(r types.ToastRequest) {
	var send func(title, body string) error
	switch r.Kind {
	case types.ToastError:
		send = m.sender.Alert
	case types.ToastWarning:
		send = m.sender.Notify
	default:
		return
	}

	title := appName + ": " + string(r.Kind)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := send(title, r.Message); err != nil {
			m.logger.Warn("desktop notification failed", "kind", r.Kind, "error", err)
		}
	}()
}

// Wait blocks until every pending notification has been handed off.
func (m *Mirror) Wait() {
	m.wg.Wait()
}
