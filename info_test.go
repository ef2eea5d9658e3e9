package slcan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	port := newMockPort("V1011\r")
	v, err := New(port).Version()
	require.NoError(t, err)
	assert.Equal(t, "V\r", port.lastWrite())
	assert.Equal(t, Version{Hardware: "1.0", Software: "1.1"}, v)
	assert.Equal(t, "hw 1.0 sw 1.1", v.String())
}

func TestVersionInvalid(t *testing.T) {
	for _, resp := range []string{"\r", "V10\r", "X1011\r", "V10G1\r", "V1A11\r", "V10F0\r"} {
		_, err := New(newMockPort(resp)).Version()
		assert.ErrorIs(t, err, ErrInvalidData, "%q", resp)
		assert.NotErrorIs(t, err, ErrInvalidInput, "%q", resp)
	}
}

func TestSerialNumber(t *testing.T) {
	port := newMockPort("NA123\r")
	sn, err := New(port).SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "N\r", port.lastWrite())
	assert.Equal(t, "A123", sn)

	_, err = New(newMockPort("N\r")).SerialNumber()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestStatus(t *testing.T) {
	sl, port := openedSLCan(t, "F00\r", "F8C\r", "F\r")

	flags, err := sl.Status()
	require.NoError(t, err)
	assert.Equal(t, "F\r", port.lastWrite())
	assert.Equal(t, StatusFlags(0), flags)
	assert.NoError(t, flags.Err())
	assert.Equal(t, "ok", flags.String())

	flags, err = sl.Status()
	require.NoError(t, err)
	assert.Equal(t, StatusBusError|StatusDataOverrun|StatusErrorWarning, flags)
	assert.Error(t, flags.Err())
	assert.Equal(t, "error warning (EI), data overrun (DOI), bus error (BEI)", flags.String())

	_, err = sl.Status()
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestStatusBadHex(t *testing.T) {
	sl, _ := openedSLCan(t, "FZZ\r")
	_, err := sl.Status()
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
