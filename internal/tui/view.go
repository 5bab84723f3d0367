package tui

import (
	"sync"

	"github.com/dorjigee198/support-chat/internal/domain"
)

// LogView is the terminal display surface. The session mutates it from the
// goroutines running Submit and Clear, so all state lives under a mutex;
// the bubbletea model reads it back when painting. After every mutation
// the view pokes the running program through the notify hook so the screen
// repaints without waiting for the next input event.
type LogView struct {
	mu       sync.Mutex
	messages []domain.Message
	pending  bool
	input    string
	clearReq bool
	confirm  chan bool

	notify func()
}

func NewLogView() *LogView {
	return &LogView{}
}

// SetNotify installs the repaint hook. Must be called before the session
// is used; typically wired to Program.Send.
func (v *LogView) SetNotify(fn func()) {
	v.mu.Lock()
	v.notify = fn
	v.mu.Unlock()
}

func (v *LogView) HasLog() bool   { return true }
func (v *LogView) HasInput() bool { return true }

func (v *LogView) AppendMessage(msg domain.Message) {
	v.mu.Lock()
	v.messages = append(v.messages, msg)
	v.mu.Unlock()
	v.poke()
}

func (v *LogView) ResetLog(msgs []domain.Message) {
	v.mu.Lock()
	v.messages = append([]domain.Message(nil), msgs...)
	v.mu.Unlock()
	v.poke()
}

func (v *LogView) ShowPending() {
	v.mu.Lock()
	v.pending = true
	v.mu.Unlock()
	v.poke()
}

func (v *LogView) HidePending() {
	v.mu.Lock()
	v.pending = false
	v.mu.Unlock()
	v.poke()
}

func (v *LogView) ReadInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

// ClearInput empties the mirrored value and flags the model to reset the
// actual text input widget on its next update.
func (v *LogView) ClearInput() {
	v.mu.Lock()
	v.input = ""
	v.clearReq = true
	v.mu.Unlock()
	v.poke()
}

// ConfirmClear blocks the calling goroutine until the user answers the
// inline prompt the model shows while Confirming reports true.
func (v *LogView) ConfirmClear() bool {
	v.mu.Lock()
	if v.confirm != nil {
		// A confirmation is already open; treat as declined.
		v.mu.Unlock()
		return false
	}
	ch := make(chan bool, 1)
	v.confirm = ch
	v.mu.Unlock()
	v.poke()

	return <-ch
}

// Model-side accessors below; all called from the bubbletea update loop.

// Snapshot returns the current log and pending state for painting.
func (v *LogView) Snapshot() ([]domain.Message, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Message, len(v.messages))
	copy(out, v.messages)
	return out, v.pending
}

// SetInput mirrors the text input widget's value after a keystroke.
func (v *LogView) SetInput(value string) {
	v.mu.Lock()
	v.input = value
	v.mu.Unlock()
}

// TakeClearRequest reports whether the input widget should be reset,
// consuming the flag.
func (v *LogView) TakeClearRequest() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	req := v.clearReq
	v.clearReq = false
	return req
}

// Confirming reports whether a clear confirmation is awaiting an answer.
func (v *LogView) Confirming() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.confirm != nil
}

// ResolveConfirm answers an open confirmation. No-op when none is open.
func (v *LogView) ResolveConfirm(confirmed bool) {
	v.mu.Lock()
	ch := v.confirm
	v.confirm = nil
	v.mu.Unlock()

	if ch != nil {
		ch <- confirmed
	}
}

func (v *LogView) poke() {
	v.mu.Lock()
	fn := v.notify
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}
