package errorlog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/meenmo/cdsmodel/errorlog"
)

func TestRing_TruncatesOverLongLines(t *testing.T) {
	t.Parallel()
	r := errorlog.NewRing(4, 10)
	r.Push("this message is definitely longer than ten characters")
	lines := r.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if len(lines[0]) != 10 {
		t.Fatalf("expected truncated length 10, got %d (%q)", len(lines[0]), lines[0])
	}
	if !strings.HasSuffix(lines[0], "...") {
		t.Fatalf("expected truncated line to end with ..., got %q", lines[0])
	}
}

func TestRing_EvictsOldestBeyondCapacity(t *testing.T) {
	t.Parallel()
	r := errorlog.NewRing(3, 64)
	r.Push("one")
	r.Push("two")
	r.Push("three")
	r.Push("four")

	lines := r.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines retained, got %d", len(lines))
	}
	if lines[0] != "two" || lines[2] != "four" {
		t.Fatalf("expected oldest evicted, got %v", lines)
	}
}

func TestRing_ShortLinePassesThroughUnchanged(t *testing.T) {
	t.Parallel()
	r := errorlog.NewRing(1, 64)
	r.Push("short")
	if got := r.Lines()[0]; got != "short" {
		t.Fatalf("got %q want %q", got, "short")
	}
}

func TestLogger_RingCapturesMessages(t *testing.T) {
	t.Parallel()
	log := errorlog.New(errorlog.Config{RingLines: 8, RingWidth: 128})
	log.Errorf("bootstrap failed: %s", "tenor 5Y")

	lines := log.Ring().Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 ring line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "bootstrap failed: tenor 5Y") {
		t.Fatalf("ring line missing message: %q", lines[0])
	}
}

func TestLogger_DisableSuppressesRingWrites(t *testing.T) {
	t.Parallel()
	log := errorlog.New(errorlog.Config{RingLines: 8, RingWidth: 128})
	log.Disable()
	log.Errorf("should not appear")
	if n := log.Ring().Len(); n != 0 {
		t.Fatalf("expected 0 ring lines while disabled, got %d", n)
	}

	log.Enable()
	log.Errorf("should appear")
	if n := log.Ring().Len(); n != 1 {
		t.Fatalf("expected 1 ring line after re-enabling, got %d", n)
	}
}

func TestLogger_CallbackInvokedPerMessage(t *testing.T) {
	t.Parallel()
	log := errorlog.New(errorlog.Config{RingLines: 8, RingWidth: 128})

	var seen []string
	log.SetCallback(func(msg string) {
		seen = append(seen, msg)
	})

	log.Errorf("first")
	log.Errorf("second")

	if len(seen) != 2 {
		t.Fatalf("expected 2 callback invocations, got %d: %v", len(seen), seen)
	}
	if seen[0] != "first" || seen[1] != "second" {
		t.Fatalf("unexpected callback messages: %v", seen)
	}
}

func TestLogger_ReentrantCallbackIsDroppedSilently(t *testing.T) {
	t.Parallel()
	log := errorlog.New(errorlog.Config{RingLines: 8, RingWidth: 128})

	log.SetCallback(func(msg string) {
		// A callback that itself tries to log must not recurse into Fire.
		log.Errorf("reentrant: %s", msg)
	})

	log.Errorf("outer")

	lines := log.Ring().Lines()
	if len(lines) != 1 {
		t.Fatalf("expected the reentrant call to be dropped, got %d lines: %v", len(lines), lines)
	}
	if lines[0] != "outer" {
		t.Fatalf("got %q want %q", lines[0], "outer")
	}
}

func TestLoadConfig_DefaultsWhenEnvUnset(t *testing.T) {
	t.Parallel()
	cfg := errorlog.LoadConfig()
	if cfg.RingLines <= 0 || cfg.RingWidth <= 0 {
		t.Fatalf("expected positive defaults, got %+v", cfg)
	}
	if cfg.LogPath == "" {
		t.Fatalf("expected a non-empty fallback log path")
	}
}

func TestLogger_CloseWithoutFileIsNoop(t *testing.T) {
	t.Parallel()
	log := errorlog.New(errorlog.Config{RingLines: 8, RingWidth: 128})
	if err := log.Close(); err != nil {
		t.Fatalf("expected nil error closing a file-less logger, got %v", err)
	}
}

func TestRing_DumpJoinsWithNewlines(t *testing.T) {
	t.Parallel()
	r := errorlog.NewRing(4, 64)
	r.Push("a")
	r.Push("b")
	if got, want := r.Dump(), "a\nb"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestLogger_TimestampMarkerInsertedAfterGap(t *testing.T) {
	t.Parallel()
	log := errorlog.New(errorlog.Config{RingLines: 8, RingWidth: 128})
	log.Errorf("first message")
	time.Sleep(10 * time.Millisecond) // well under the 2s gap, no marker expected
	log.Errorf("second message")

	lines := log.Ring().Lines()
	if len(lines) != 2 {
		t.Fatalf("expected no timestamp marker for a sub-2s gap, got %d lines: %v", len(lines), lines)
	}
}
