package isoloot

import (
	"time"
)

// MessageType is a log message line type
type MessageType int

// Message types for log items
const (
	MESSAGESYSTEM MessageType = iota
	MESSAGEPROMPT
	MESSAGEACTION
	MESSAGEWARNING
)

// MaxMessages bounds the message log
const MaxMessages = 50

// LogItem is an individual message log line
type LogItem struct {
	Message     string      `json:"text"`
	Timestamp   time.Time   `json:"timestamp"`
	MessageType MessageType `json:"type"`
}

// MessageLog is a FIFO that keeps the newest MaxMessages lines
type MessageLog struct {
	items []LogItem
	limit int
}

// NewMessageLog makes a log holding at most limit lines
func NewMessageLog(limit int) *MessageLog {
	if limit <= 0 {
		limit = MaxMessages
	}
	return &MessageLog{items: make([]LogItem, 0, limit), limit: limit}
}

// Add appends item and evicts from the front past the limit
func (l *MessageLog) Add(item LogItem) {
	l.items = append(l.items, item)
	if over := len(l.items) - l.limit; over > 0 {
		copy(l.items, l.items[over:])
		for i := len(l.items) - over; i < len(l.items); i++ {
			l.items[i] = LogItem{}
		}
		l.items = l.items[:l.limit]
	}
}

// Len is the number of lines held
func (l *MessageLog) Len() int {
	return len(l.items)
}

// Items copies the log, oldest first
func (l *MessageLog) Items() []LogItem {
	items := make([]LogItem, len(l.items))
	copy(items, l.items)
	return items
}

// Tail copies the newest n lines, oldest first
func (l *MessageLog) Tail(n int) []LogItem {
	if n > len(l.items) {
		n = len(l.items)
	}
	if n <= 0 {
		return []LogItem{}
	}
	items := make([]LogItem, n)
	copy(items, l.items[len(l.items)-n:])
	return items
}
