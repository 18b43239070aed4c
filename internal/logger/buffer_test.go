package logger

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogBufferKeepsMostRecent(t *testing.T) {
	buf := NewLogBuffer(3)
	for i := 0; i < 5; i++ {
		buf.Add(LogEntry{Message: fmt.Sprintf("m%d", i)})
	}

	var got []string
	for _, e := range buf.Recent(0) {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"m2", "m3", "m4"}, got)
	assert.Equal(t, uint64(5), buf.Total())

	last := buf.Recent(2)
	require.Len(t, last, 2)
	assert.Equal(t, "m3", last[0].Message)
	assert.Equal(t, "m4", last[1].Message)
}

func TestLogBufferBeforeWrap(t *testing.T) {
	buf := NewLogBuffer(10)
	buf.Add(LogEntry{Message: "a"})
	buf.Add(LogEntry{Message: "b"})

	recent := buf.Recent(5)
	require.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].Message)
	assert.Len(t, buf.Recent(1), 1)
	assert.Equal(t, "b", buf.Recent(1)[0].Message)
}

func TestLogBufferConcurrentAccess(t *testing.T) {
	buf := NewLogBuffer(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf.Add(LogEntry{Message: fmt.Sprintf("g%d-%d", id, j)})
				_ = buf.Recent(5)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, uint64(1000), buf.Total())
	assert.Len(t, buf.Recent(0), 50)
}

func TestBufferedLoggerParsesJSON(t *testing.T) {
	buf := NewLogBuffer(10)
	log, err := NewBuffered(false, buf)
	require.NoError(t, err)

	log.Named("driver").Info("Batch finished", zap.Int("wins", 3))
	log.Debug("hidden")

	entries := buf.Recent(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "driver", entries[0].Logger)
	assert.Equal(t, "Batch finished", entries[0].Message)
	assert.EqualValues(t, 3, entries[0].Fields["wins"])
}

func TestNewBufferedRequiresBuffer(t *testing.T) {
	_, err := NewBuffered(true, nil)
	assert.Error(t, err)
}

func TestLogBufferKeepsPlainLines(t *testing.T) {
	buf := NewLogBuffer(4)
	_, err := buf.Write([]byte("not json\n"))
	require.NoError(t, err)
	require.Len(t, buf.Recent(0), 1)
	assert.Equal(t, "not json", buf.Recent(0)[0].Message)
}

func TestConsoleLoggerWritesToGivenWriter(t *testing.T) {
	var out bytes.Buffer
	log := New(true, &out)
	log.Debug("debug line")
	log.Info("Simulation started", zap.Int("batches", 10))
	require.NoError(t, log.Sync())

	s := out.String()
	assert.Contains(t, s, "[DEBUG]")
	assert.Contains(t, s, "debug line")
	assert.Contains(t, s, "Simulation started")
	assert.Contains(t, s, `"batches": 10`)
}
