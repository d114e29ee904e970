package ui

import (
	"sync"
	"time"
)

// FlashLevel represents the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// FlashMessage is a flash notification with a level and expiry.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel holds the current transient notification. Errors linger longer
// than confirmations.
type FlashModel struct {
	mu      sync.RWMutex
	current FlashMessage
}

// Info sets an info-level flash message.
func (f *FlashModel) Info(msg string) {
	f.set(msg, FlashInfo, 5*time.Second)
}

// Warn sets a warn-level flash message.
func (f *FlashModel) Warn(msg string) {
	f.set(msg, FlashWarn, 8*time.Second)
}

// Err sets an error-level flash message.
func (f *FlashModel) Err(err error) {
	f.set(err.Error(), FlashErr, 10*time.Second)
}

func (f *FlashModel) set(msg string, level FlashLevel, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = FlashMessage{Text: msg, Level: level, Expires: time.Now().Add(d)}
}

// Get returns the current flash message, or the zero value if expired.
func (f *FlashModel) Get() FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if time.Now().After(f.current.Expires) {
		return FlashMessage{}
	}
	return f.current
}

// Render returns the flash text wrapped in its level color for the theme.
func (f *FlashModel) Render(theme *Theme) string {
	msg := f.Get()
	if msg.Text == "" {
		return ""
	}
	c := theme.FlashInfoColor
	switch msg.Level {
	case FlashWarn:
		c = theme.FlashWarnColor
	case FlashErr:
		c = theme.FlashErrColor
	}
	return Tag(c, msg.Text)
}
