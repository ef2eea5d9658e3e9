package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	assert.True(t, New(true).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, New(false).Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, New(false).Enabled(context.Background(), slog.LevelInfo))
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, "err", attr.Key)
}
