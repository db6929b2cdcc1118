package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGetWeekKey(t *testing.T) {
	testTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	if got := getWeekKey(testTime); got != "2026-W03" {
		t.Errorf("Expected 2026-W03, got %s", got)
	}
}

func TestRotatingLoggerWritesCurrentWeek(t *testing.T) {
	dir := t.TempDir()

	rl, err := OpenRotatingLogger(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to open logger: %v", err)
	}

	if _, err := rl.Write([]byte("Test log message\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := rl.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, logFilePrefix+getWeekKey(time.Now())+".log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "Test log message") {
		t.Errorf("Log file does not contain test message: %s", content)
	}
}

func TestRotatingLoggerSizeLimit(t *testing.T) {
	dir := t.TempDir()

	rl, err := OpenRotatingLogger(dir, 1, 100)
	if err != nil {
		t.Fatalf("Failed to open logger: %v", err)
	}
	defer rl.Close()

	line := []byte(strings.Repeat("x", 60) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := rl.Write(line); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	week := getWeekKey(time.Now())
	for _, name := range []string{
		logFilePrefix + week + ".log",
		logFilePrefix + week + "_01.log",
		logFilePrefix + week + "_02.log",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
			continue
		}
		if info.Size() > 100 {
			t.Errorf("Expected %s within size limit, got %d bytes", name, info.Size())
		}
	}
}

func TestRotatingLoggerSkipsFullExistingFile(t *testing.T) {
	dir := t.TempDir()
	week := getWeekKey(time.Now())
	full := filepath.Join(dir, logFilePrefix+week+".log")
	if err := os.WriteFile(full, []byte(strings.Repeat("y", 200)), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	rl, err := OpenRotatingLogger(dir, 1, 100)
	if err != nil {
		t.Fatalf("Failed to open logger: %v", err)
	}
	defer rl.Close()

	if _, err := rl.Write([]byte("new line\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, logFilePrefix+week+"_01.log"))
	if err != nil {
		t.Fatalf("Expected numbered file: %v", err)
	}
	if string(content) != "new line\n" {
		t.Errorf("Unexpected numbered file content: %q", content)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()

	rl, err := OpenRotatingLogger(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to open logger: %v", err)
	}
	defer rl.Close()

	old := filepath.Join(dir, logFilePrefix+"2020-W01.log")
	unrelated := filepath.Join(dir, "other.log")
	for _, path := range []string{old, unrelated} {
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatalf("Failed to seed %s: %v", path, err)
		}
		past := time.Now().Add(-30 * 24 * time.Hour)
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("Failed to age %s: %v", path, err)
		}
	}

	deleted, err := rl.cleanupOldLogs(time.Now())
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted file, got %d", deleted)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Expected old log to be removed")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("Expected unrelated file to be kept")
	}
}

func TestRotatingLoggerConcurrentWrites(t *testing.T) {
	dir := t.TempDir()

	rl, err := OpenRotatingLogger(dir, 1, 0)
	if err != nil {
		t.Fatalf("Failed to open logger: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := rl.Write([]byte("line\n")); err != nil {
					t.Errorf("Write failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	rl.Close()

	content, err := os.ReadFile(filepath.Join(dir, logFilePrefix+getWeekKey(time.Now())+".log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if got := strings.Count(string(content), "line\n"); got != 1000 {
		t.Errorf("Expected 1000 lines, got %d", got)
	}
}
