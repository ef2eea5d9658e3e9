package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/roffe/slcan"
	"github.com/stretchr/testify/assert"
)

func TestDoRetriesTimeouts(t *testing.T) {
	calls := 0
	err := do(context.Background(), 3, func() error {
		calls++
		if calls < 3 {
			return &slcan.Error{Op: "open", Kind: slcan.ErrTimedOut}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUp(t *testing.T) {
	calls := 0
	err := do(context.Background(), 2, func() error {
		calls++
		return &slcan.Error{Op: "open", Kind: slcan.ErrTimedOut}
	})
	assert.ErrorIs(t, err, slcan.ErrTimedOut)
	assert.Equal(t, 2, calls)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	ioErr := &slcan.Error{Op: "write", Kind: slcan.ErrIO, Err: errors.New("unplugged")}
	err := do(context.Background(), 5, func() error {
		calls++
		return ioErr
	})
	assert.ErrorIs(t, err, slcan.ErrIO)
	assert.Equal(t, 1, calls)
}

func TestDoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := do(ctx, 3, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
