package errorlog

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// timestampGap is the minimum elapsed time since the previous message
// before a standalone timestamp marker is inserted into the ring.
const timestampGap = 2 * time.Second

// Logger is the process-wide error channel: one logrus.Logger backed by
// an optional on-disk file, mirrored into an in-memory Ring, with an
// on/off toggle and a re-entrancy guard around the write path. All
// state is owned here rather than scattered across packages.
type Logger struct {
	mu       sync.Mutex
	base     *logrus.Logger
	ring     *Ring
	file     *os.File
	enabled  bool
	writing  bool
	callback func(string)
	lastMsg  time.Time
}

// New constructs a Logger from cfg. If cfg.LogPath is non-empty, it is
// opened for append (created if missing); failure to open the file is
// non-fatal — the ring and callback still function, file writes are
// simply skipped.
func New(cfg Config) *Logger {
	l := &Logger{
		base:    logrus.New(),
		ring:    NewRing(cfg.RingLines, cfg.RingWidth),
		enabled: true,
	}
	l.base.SetOutput(os.Stderr)
	l.base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.base.AddHook(l)

	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			l.file = f
		}
	}
	return l
}

// defaultLogger is the process-wide singleton most callers use through
// the package-level functions.
var defaultLogger = New(LoadConfig())

// Enable turns writing on; Disable turns it off without losing prior
// ring contents. Both operate on the default process-wide Logger.
func Enable()  { defaultLogger.Enable() }
func Disable() { defaultLogger.Disable() }

// SetCallback installs a function invoked with the formatted message
// text once per successfully written entry, on the default Logger.
func SetCallback(cb func(string)) { defaultLogger.SetCallback(cb) }

// Dump returns the default Logger's current ring snapshot.
func Dump() []string { return defaultLogger.Ring().Lines() }

// Errorf and Infof funnel through the default process-wide Logger.
func Errorf(format string, args ...any) { defaultLogger.Errorf(format, args...) }
func Infof(format string, args ...any)  { defaultLogger.Infof(format, args...) }

func (l *Logger) Enable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = true
}

func (l *Logger) Disable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
}

func (l *Logger) SetCallback(cb func(string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callback = cb
}

func (l *Logger) Ring() *Ring {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ring
}

func (l *Logger) Errorf(format string, args ...any) {
	l.base.Errorf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.base.Infof(format, args...)
}

// Close flushes and closes the on-disk log file, if one is open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Levels reports that this hook fires for every logrus level, so every
// Errorf/Infof call funnels through Fire.
func (l *Logger) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook. It disables itself (via the writing
// flag) while running so a callback or formatter that itself logs
// cannot recurse, inserts a timestamp marker when the gap since the
// previous message is large enough, mirrors the entry into the ring,
// optionally appends it to the on-disk file, and invokes the callback.
func (l *Logger) Fire(entry *logrus.Entry) error {
	l.mu.Lock()
	if !l.enabled || l.writing {
		l.mu.Unlock()
		return nil
	}
	l.writing = true
	defer func() {
		l.mu.Lock()
		l.writing = false
		l.mu.Unlock()
	}()

	now := entry.Time
	if now.IsZero() {
		now = time.Now()
	}
	if !l.lastMsg.IsZero() && now.Sub(l.lastMsg) >= timestampGap {
		l.ring.Push("--- " + now.Format(time.RFC3339) + " ---")
	}
	l.lastMsg = now

	msg := entry.Message
	l.ring.Push(msg)
	file := l.file
	cb := l.callback
	l.mu.Unlock()

	if file != nil {
		_, _ = file.WriteString(msg + "\n")
	}
	if cb != nil {
		cb(msg)
	}
	return nil
}
