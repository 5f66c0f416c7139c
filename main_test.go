package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"pizzastore/console"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptibleReturnsResult(t *testing.T) {
	boom := errors.New("boom")
	called := false
	err := interruptible(context.Background(), func() error { return boom }, func() { called = true })
	assert.Same(t, boom, err)
	assert.False(t, called)
}

func TestInterruptibleLeavesBlockedPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	in := console.NewReader(pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	interrupted := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- interruptible(ctx, func() error {
			_, err := in.Choice("")
			return err
		}, func() { close(interrupted) })
	}()

	// the prompt is waiting on input that never comes
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked prompt kept the program from stopping")
	}
	_, ok := <-interrupted
	assert.False(t, ok)
}
