package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// writeFile writes data into a fresh temp dir and returns its path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func resetFlags() {
	quiet = false
	verbose = false
	jsonOut = false

	forgeHeapFrame = 0
	forgeDup = 0
	forgeExtraIx = 0
	forgeOut = ""
	forgeProgram = ""

	replayHeapSize = 0
	replayInput = ""
	replayMapped = 0
	replayPoke = false
	replayBackend = "slice"
}
