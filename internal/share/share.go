// Package share hands short messages to whatever the host can share them
// with: the system clipboard, a terminal, or nothing.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
)

// Message is a share payload. Title and URL are optional.
type Message struct {
	Title string
	Text  string
	URL   string
}

// Body returns the text with the URL appended on its own paragraph.
func (m Message) Body() string {
	if m.URL == "" {
		return m.Text
	}
	if m.Text == "" {
		return m.URL
	}
	return m.Text + "\n\nDownload: " + m.URL
}

// ErrUnavailable is returned when the host has no way to share.
var ErrUnavailable = errors.New("share: sharing is not available")

// Sharer delivers a message.
type Sharer interface {
	Share(ctx context.Context, msg Message) error
}

// Clipboard copies the message body to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard returns a Sharer backed by the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

// Available reports whether the platform has a clipboard utility.
func (c *Clipboard) Available() bool {
	return !clipboard.Unsupported
}

func (c *Clipboard) Share(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.write(msg.Body()); err != nil {
		return fmt.Errorf("share: clipboard: %w", err)
	}
	return nil
}

// Writer prints the message to w.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Sharer that prints to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Share(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var b strings.Builder
	if msg.Title != "" {
		b.WriteString(msg.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(msg.Body())
	b.WriteString("\n")
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("share: write: %w", err)
	}
	return nil
}

// Nop stands in where nothing can share. Every message is refused with
// ErrUnavailable.
type Nop struct{}

func (Nop) Share(context.Context, Message) error { return ErrUnavailable }

// Send shares msg and swallows any failure. It reports whether the message
// was delivered so callers can show a hint.
func Send(ctx context.Context, s Sharer, msg Message, logger *log.Logger) bool {
	if s == nil {
		return false
	}
	if err := s.Share(ctx, msg); err != nil {
		if logger != nil {
			logger.Debug("share failed", "title", msg.Title, "err", err)
		}
		return false
	}
	return true
}

// AwardMessage builds the message for a finished round.
func AwardMessage(title string, round, points int, tierTitle string) Message {
	return Message{
		Title: title,
		Text:  fmt.Sprintf("Round %d result: I scored %d pts and unlocked: %s!", round, points, tierTitle),
	}
}

// AppMessage builds the app recommendation message.
func AppMessage(title, text, url string) Message {
	return Message{Title: title, Text: text, URL: url}
}
