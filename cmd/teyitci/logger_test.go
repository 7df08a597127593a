// cmd/teyitci/logger_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLoggerFailureFallsBackToStdout(t *testing.T) {
	// A path under a regular file cannot be created as a directory,
	// so opening the log file must fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	if err := InitLogger(filepath.Join(blocker, "app.log"), LogInfo); err == nil {
		t.Fatal("Expected InitLogger to fail for an uncreatable log path")
	}

	logger := AppLogger()
	if logger == nil {
		t.Fatal("Expected AppLogger to return a fallback logger after failed init")
	}

	// Must not panic even though no log file is open.
	logger.Info("logging after failed init")
	logger.Error("error logging after failed init")
	if err := logger.Close(); err != nil {
		t.Errorf("Expected Close on a fileless logger to succeed, got %v", err)
	}
}
