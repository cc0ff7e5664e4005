package logbook

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trainlog.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestEntriesCarryLevel(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "logs", "trainlog.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	t.Cleanup(func() { _ = book.Close() })
	book.Warnf("status %d", 500)
	book.Errorf("transport: %s", "refused")
	book.Debugf("retrying")
	lines, total := book.Tail(10)
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	for idx, want := range []string{"WARN", "ERROR", "DEBUG"} {
		fields := strings.Split(lines[idx], "\t")
		if len(fields) < 3 {
			t.Fatalf("line %q is not tab separated", lines[idx])
		}
		if fields[1] != want {
			t.Fatalf("line %d level = %q, want %s", idx, fields[1], want)
		}
		if !strings.HasSuffix(fields[0], "Z") {
			t.Fatalf("timestamp %q is not UTC", fields[0])
		}
	}
}

func TestNilLogbookIsNoop(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("expected empty tail from nil logbook")
	}
	if err := book.Close(); err != nil {
		t.Fatalf("close nil logbook: %v", err)
	}
}

func TestCloseWhileAppending(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "trainlog.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				book.Warnf("request %d/%d", n, j)
			}
		}(i)
	}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := book.Close(); err != nil {
				t.Errorf("close: %v", err)
			}
		}()
	}
	wg.Wait()
	book.Info("after close")
}
