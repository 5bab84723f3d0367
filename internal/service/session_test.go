package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorjigee198/support-chat/internal/config"
	"github.com/dorjigee198/support-chat/internal/domain"
)

// fakeView records everything the session renders.
type fakeView struct {
	mu sync.Mutex

	hasLog   bool
	hasInput bool

	appended [][2]string // role, text pairs in append order
	resets   int

	pending    bool
	duplicates int // ShowPending while already showing

	input        string
	inputCleared int

	confirmAnswer bool
	confirmAsked  int
}

func newFakeView() *fakeView {
	return &fakeView{hasLog: true, hasInput: true}
}

func (v *fakeView) HasLog() bool   { return v.hasLog }
func (v *fakeView) HasInput() bool { return v.hasInput }

func (v *fakeView) AppendMessage(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.appended = append(v.appended, [2]string{string(msg.Role), msg.Text})
}

func (v *fakeView) ResetLog(msgs []domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *fakeView) ShowPending() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending {
		v.duplicates++
	}
	v.pending = true
}

func (v *fakeView) HidePending() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = false
}

func (v *fakeView) ReadInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *fakeView) ClearInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = ""
	v.inputCleared++
}

func (v *fakeView) ConfirmClear() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmAsked++
	return v.confirmAnswer
}

func (v *fakeView) snapshotAppended() [][2]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([][2]string, len(v.appended))
	copy(out, v.appended)
	return out
}

// fakeSender scripts the reply endpoint.
type fakeSender struct {
	mu       sync.Mutex
	sent     []string
	reply    string
	err      error
	block    chan struct{} // when non-nil, Send waits for it to close
	cleared  int
	clearErr error
}

func (f *fakeSender) Send(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.sent = append(f.sent, text)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply, f.err
}

func (f *fakeSender) ClearHistory(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
	return f.clearErr
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newSession(view *fakeView, sender *fakeSender) *ChatSession {
	s := NewChatSession(view, sender)
	s.Initialize()
	return s
}

func TestInitializeSeedsGreeting(t *testing.T) {
	view := newFakeView()
	s := newSession(view, &fakeSender{})

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleBot, msgs[0].Role)
	assert.Equal(t, config.Greeting, msgs[0].Text)
	assert.Len(t, view.snapshotAppended(), 1)
}

func TestInitializeWithoutLogSurfaceIsNoop(t *testing.T) {
	view := newFakeView()
	view.hasLog = false
	sender := &fakeSender{reply: "Hi"}
	s := newSession(view, sender)

	assert.Empty(t, s.Messages())
	assert.Empty(t, view.snapshotAppended())

	// An inactive session ignores everything.
	s.Submit(context.Background(), "hello")
	assert.Empty(t, s.Messages())
	assert.Zero(t, sender.sentCount())
}

func TestInitializeWithoutInputFieldIsNoop(t *testing.T) {
	view := newFakeView()
	view.hasInput = false
	s := newSession(view, &fakeSender{})

	assert.Empty(t, s.Messages())
}

func TestInitializeTwiceSeedsOnce(t *testing.T) {
	view := newFakeView()
	s := newSession(view, &fakeSender{})
	s.Initialize()

	assert.Len(t, s.Messages(), 1)
}

func TestSubmitBlankInputIsNoop(t *testing.T) {
	view := newFakeView()
	view.input = "   \t "
	sender := &fakeSender{reply: "Hi"}
	s := newSession(view, sender)

	s.Submit(context.Background(), "")

	assert.Len(t, s.Messages(), 1) // greeting only
	assert.Zero(t, sender.sentCount())
	assert.Zero(t, view.inputCleared)
}

func TestSubmitFromInputField(t *testing.T) {
	view := newFakeView()
	view.input = "  hello there  "
	sender := &fakeSender{reply: "Hi"}
	s := newSession(view, sender)

	s.Submit(context.Background(), "")

	appended := view.snapshotAppended()
	require.Len(t, appended, 3)
	assert.Equal(t, [2]string{"user", "hello there"}, appended[1])
	assert.Equal(t, [2]string{"bot", "Hi"}, appended[2])

	assert.Equal(t, []string{"hello there"}, sender.sent)
	assert.Equal(t, 1, view.inputCleared)
	assert.False(t, view.pending)
	assert.Zero(t, view.duplicates)
}

func TestSubmitQuickReplyBypassesInputField(t *testing.T) {
	view := newFakeView()
	view.input = "half-typed draft"
	sender := &fakeSender{reply: "Sure"}
	s := newSession(view, sender)

	s.Submit(context.Background(), "What services do you offer?")

	assert.Equal(t, []string{"What services do you offer?"}, sender.sent)
	assert.Zero(t, view.inputCleared)
	assert.Equal(t, "half-typed draft", view.input)
}

func TestSubmitRendersServerError(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{err: &domain.ServerError{Message: "bad input"}}
	s := newSession(view, sender)

	s.Submit(context.Background(), "hello")

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.RoleError, msgs[2].Role)
	assert.Equal(t, "Error: bad input", msgs[2].Text)
}

func TestSubmitRendersTopLevelError(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{err: &domain.ServerError{Message: "down"}}
	s := newSession(view, sender)

	s.Submit(context.Background(), "hello")

	msgs := s.Messages()
	assert.Equal(t, "Error: down", msgs[len(msgs)-1].Text)
}

func TestSubmitRendersUnexpectedFormat(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{err: domain.ErrUnexpectedFormat}
	s := newSession(view, sender)

	s.Submit(context.Background(), "hello")

	msgs := s.Messages()
	assert.Equal(t, domain.RoleError, msgs[len(msgs)-1].Role)
	assert.Equal(t, TextUnexpectedFormat, msgs[len(msgs)-1].Text)
}

func TestSubmitRendersNoReply(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{err: domain.ErrNoReply}
	s := newSession(view, sender)

	s.Submit(context.Background(), "hello")

	msgs := s.Messages()
	assert.Equal(t, TextNoReply, msgs[len(msgs)-1].Text)
}

func TestSubmitTransportFailureClearsPending(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{err: errors.New("timeout")}
	s := newSession(view, sender)

	s.Submit(context.Background(), "hello")

	msgs := s.Messages()
	assert.Equal(t, domain.RoleError, msgs[len(msgs)-1].Role)
	assert.Equal(t, "Error: timeout", msgs[len(msgs)-1].Text)
	assert.False(t, view.pending)
	assert.False(t, s.Pending())
}

// logRecorder captures slog records for assertions.
type logRecorder struct {
	mu      sync.Mutex
	records []map[string]any
}

func (h *logRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (h *logRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := map[string]any{"msg": r.Message}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	h.records = append(h.records, attrs)
	h.mu.Unlock()
	return nil
}

func (h *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *logRecorder) WithGroup(string) slog.Handler      { return h }

func TestSubmitFailureLogsMessageID(t *testing.T) {
	rec := &logRecorder{}
	prev := slog.Default()
	slog.SetDefault(slog.New(rec))
	defer slog.SetDefault(prev)

	view := newFakeView()
	sender := &fakeSender{err: errors.New("timeout")}
	s := newSession(view, sender)

	s.Submit(context.Background(), "hello")

	var userID uuid.UUID
	for _, msg := range s.Messages() {
		if msg.Role == domain.RoleUser && msg.Text == "hello" {
			userID = msg.ID
		}
	}
	require.NotEqual(t, uuid.Nil, userID)

	var logged bool
	for _, attrs := range rec.records {
		if attrs["msg"] == "reply exchange failed" {
			logged = true
			assert.Equal(t, userID, attrs["message_id"])
		}
	}
	assert.True(t, logged)
}

func TestOverlappingSubmitsNeverDuplicateMarker(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{reply: "Hi", block: make(chan struct{})}
	s := newSession(view, sender)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Submit(context.Background(), "hello")
		}()
	}

	require.Eventually(t, func() bool {
		return sender.sentCount() == 2
	}, time.Second, 5*time.Millisecond)

	// Both requests outstanding, exactly one marker.
	assert.True(t, s.Pending())
	assert.Zero(t, view.duplicates)

	close(sender.block)
	wg.Wait()

	assert.False(t, s.Pending())
	assert.Zero(t, view.duplicates)
	// Greeting + 2 user + 2 bot messages, nothing lost and nothing extra.
	assert.Len(t, s.Messages(), 5)
}

func TestClearDeclinedKeepsLog(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{reply: "Hi"}
	s := newSession(view, sender)
	s.Submit(context.Background(), "hello")

	before := s.Messages()
	s.Clear(context.Background())

	assert.Equal(t, before, s.Messages())
	assert.Equal(t, 1, view.confirmAsked)
	assert.Zero(t, view.resets)
	assert.Zero(t, sender.cleared)
}

func TestClearConfirmedResetsToGreeting(t *testing.T) {
	view := newFakeView()
	view.confirmAnswer = true
	sender := &fakeSender{reply: "Hi"}
	s := newSession(view, sender)
	s.Submit(context.Background(), "hello")

	s.Clear(context.Background())

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleBot, msgs[0].Role)
	assert.Equal(t, config.Greeting, msgs[0].Text)
	assert.Equal(t, 1, view.resets)
	assert.Equal(t, 1, sender.cleared)
}

func TestResetSurvivesRemoteClearFailure(t *testing.T) {
	view := newFakeView()
	sender := &fakeSender{reply: "Hi", clearErr: errors.New("unreachable")}
	s := newSession(view, sender)
	s.Submit(context.Background(), "hello")

	s.Reset(context.Background())

	require.Len(t, s.Messages(), 1)
	assert.Equal(t, config.Greeting, s.Messages()[0].Text)
}
