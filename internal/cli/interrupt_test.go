//go:build unix

package cli

import (
	"bytes"
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptHandler_ParentCancel(t *testing.T) {
	var buf bytes.Buffer
	h := NewInterruptHandler(&buf)

	parent, cancel := context.WithCancel(context.Background())
	ctx := h.HandleInterrupts(parent)
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled with parent")
	}
	assert.False(t, h.WasInterrupted())
	assert.Empty(t, buf.String())
}

func TestInterruptHandler_Signal(t *testing.T) {
	var buf bytes.Buffer
	h := NewInterruptHandler(&buf)

	ctx := h.HandleInterrupts(context.Background())
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled on interrupt")
	}
	assert.True(t, h.WasInterrupted())
	assert.Contains(t, buf.String(), "were not saved")
}
