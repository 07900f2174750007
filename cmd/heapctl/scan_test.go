package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sbfheap/internal/rawinput"
)

func TestScanCommand(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		wantContain []string
	}{
		{
			name:        "request honored",
			input:       rawinput.WithHeapFrame(128 * 1024),
			wantContain: []string{"Heap: 131,072 bytes", "Reason: found", "by instruction 0"},
		},
		{
			name:        "below minimum",
			input:       rawinput.WithHeapFrame(1024),
			wantContain: []string{"Heap: 32,768 bytes", "request below minimum"},
		},
		{
			name:        "above maximum",
			input:       rawinput.WithHeapFrame(512 * 1024),
			wantContain: []string{"Heap: 524,288 bytes", "platform maximum"},
		},
		{
			name:        "garbage",
			input:       []byte{1, 2, 3},
			wantContain: []string{"Heap: 32,768 bytes", "malformed input"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			path := writeFile(t, "input.bin", tt.input)

			output, err := captureOutput(t, func() error {
				return runScan([]string{path})
			})
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestScanCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeFile(t, "input.bin", rawinput.WithHeapFrame(64*1024))

	output, err := captureOutput(t, func() error {
		return runScan([]string{path})
	})
	require.NoError(t, err)

	var rep scanReport
	require.NoError(t, json.Unmarshal([]byte(output), &rep))
	assert.Equal(t, uint64(64*1024), rep.HeapSize)
	assert.True(t, rep.Found)
	assert.Equal(t, "found", rep.Reason)
}

func TestScanCommand_MissingFile(t *testing.T) {
	resetFlags()
	_, err := captureOutput(t, func() error {
		return runScan([]string{"does-not-exist.bin"})
	})
	require.ErrorContains(t, err, "failed to read input")
}
