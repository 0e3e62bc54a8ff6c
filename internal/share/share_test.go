package share

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardMessage(t *testing.T) {
	msg := AwardMessage("My award", 3, 120, "Lucky Bear")

	assert.Equal(t, "My award", msg.Title)
	assert.Equal(t, "Round 3 result: I scored 120 pts and unlocked: Lucky Bear!", msg.Body())
}

func TestAppMessageBody(t *testing.T) {
	msg := AppMessage("Share the app", "Try this app! 🎮", "https://example.com")
	assert.Equal(t, "Try this app! 🎮\n\nDownload: https://example.com", msg.Body())

	assert.Equal(t, "https://example.com", Message{URL: "https://example.com"}.Body())
}

func TestWriterShare(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).Share(context.Background(), Message{Title: "T", Text: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "T\n\nhello\n", buf.String())
}

func TestClipboardShare(t *testing.T) {
	var got string
	c := &Clipboard{write: func(s string) error { got = s; return nil }}

	require.NoError(t, c.Share(context.Background(), AppMessage("", "hi", "https://x")))
	assert.Equal(t, "hi\n\nDownload: https://x", got)

	c.write = func(string) error { return errors.New("no xclip") }
	assert.Error(t, c.Share(context.Background(), Message{Text: "hi"}))
}

func TestShareHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.Error(t, NewWriter(&buf).Share(ctx, Message{Text: "x"}))
	assert.Empty(t, buf.String())
}

type failing struct{}

func (failing) Share(context.Context, Message) error { return errors.New("boom") }

func TestSendSwallowsErrors(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	assert.False(t, Send(context.Background(), failing{}, Message{Title: "My award"}, logger))
	assert.Contains(t, logs.String(), "share failed")

	assert.False(t, Send(context.Background(), nil, Message{}, nil))
}

func TestNopRefusesToShare(t *testing.T) {
	err := Nop{}.Share(context.Background(), Message{Text: "hi"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, Send(context.Background(), Nop{}, Message{Text: "hi"}, nil))
}
