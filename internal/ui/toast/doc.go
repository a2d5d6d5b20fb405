// Package toast shows short-lived status messages.
//
// A Notifier owns the single toast element of a page. Each Notify call
// overwrites that element's content, cancels whatever reveal or dismiss was
// still pending from an earlier call, and schedules a fresh pair: the
// element gains the "show" class after the reveal delay and loses it after
// the dismiss delay, counted from the reveal.
//
//	hidden --Notify--> revealing --reveal--> visible --dismiss--> hidden
//
// Cancellation works by sequence number: every scheduled message carries the
// sequence of the call that produced it, and Update ignores messages whose
// sequence is no longer current. The most recent call therefore always gets
// its full display time.
//
// The Notifier is a bubbletea sub-model. Notify returns the command that
// delivers the reveal; the owning model forwards messages to Update.
//
//	cmd := n.Notify("Saved successfully", types.ToastSuccess)
//	...
//	case msg:
//	    cmds = append(cmds, n.Update(msg))
package toast
