// internal/logger/buffer.go
package logger

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// LogEntry represents a single log entry in the buffer
type LogEntry struct {
	Timestamp time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Logger    string                 `json:"logger,omitempty"`
	Message   string                 `json:"msg"`
	Fields    map[string]interface{} `json:"-"`
}

// LogBuffer keeps the most recent log lines in a fixed-size ring.
// It implements io.Writer for zap's JSON encoder.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	wrapped bool
	total   uint64
}

// NewLogBuffer creates a ring holding up to size entries.
func NewLogBuffer(size int) *LogBuffer {
	if size <= 0 {
		size = 1
	}
	return &LogBuffer{entries: make([]LogEntry, size)}
}

// Write parses one or more JSON log lines. Lines that are not JSON are
// kept verbatim as the message.
func (lb *LogBuffer) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		lb.Add(parseLine(line))
	}
	return len(p), nil
}

func parseLine(line string) LogEntry {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{Timestamp: time.Now(), Level: "info", Message: line}
	}

	entry := LogEntry{Timestamp: time.Now(), Fields: make(map[string]interface{})}
	for k, v := range raw {
		switch k {
		case "level":
			entry.Level, _ = v.(string)
		case "msg":
			entry.Message, _ = v.(string)
		case "logger":
			entry.Logger, _ = v.(string)
		case "time":
			if s, ok := v.(string); ok {
				if ts, err := time.Parse("2006-01-02T15:04:05.000Z0700", s); err == nil {
					entry.Timestamp = ts
				}
			}
		default:
			entry.Fields[k] = v
		}
	}
	return entry
}

// Add appends an entry, overwriting the oldest one when full.
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.entries[lb.next] = entry
	lb.next = (lb.next + 1) % len(lb.entries)
	if lb.next == 0 {
		lb.wrapped = true
	}
	lb.total++
}

// Recent returns up to limit entries, oldest first. limit <= 0 returns all.
func (lb *LogBuffer) Recent(limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	count := lb.next
	start := 0
	if lb.wrapped {
		count = len(lb.entries)
		start = lb.next
	}
	if limit > 0 && limit < count {
		start += count - limit
		count = limit
	}

	out := make([]LogEntry, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, lb.entries[(start+i)%len(lb.entries)])
	}
	return out
}

// Total reports how many entries were ever added.
func (lb *LogBuffer) Total() uint64 {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.total
}
