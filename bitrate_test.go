package slcan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitRateCodes(t *testing.T) {
	tests := []struct {
		kbit float64
		want BitRate
		code byte
	}{
		{10, BitRate10K, '0'},
		{20, BitRate20K, '1'},
		{50, BitRate50K, '2'},
		{100, BitRate100K, '3'},
		{125, BitRate125K, '4'},
		{250, BitRate250K, '5'},
		{500, BitRate500K, '6'},
		{800, BitRate800K, '7'},
		{1000, BitRate1000K, '8'},
	}
	for _, tt := range tests {
		br, err := ParseBitRate(tt.kbit)
		require.NoError(t, err)
		assert.Equal(t, tt.want, br)

		code, err := br.Code()
		require.NoError(t, err)
		assert.Equal(t, tt.code, code, br.String())
		assert.Equal(t, tt.kbit, br.Kbit())
	}
}

func TestParseBitRateUnknown(t *testing.T) {
	for _, kbit := range []float64{0, 33.3, 47.619, 615, 750, 2000} {
		_, err := ParseBitRate(kbit)
		assert.ErrorIs(t, err, ErrInvalidInput, "%g", kbit)
	}
}

func TestBitRateString(t *testing.T) {
	assert.Equal(t, "500kbit/s", BitRate500K.String())
	assert.Equal(t, "BitRate(99)", BitRate(99).String())
	_, err := BitRate(99).Code()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, BitRate(99).Kbit())
}

func TestBitRateTableOrder(t *testing.T) {
	for i, info := range bitRates {
		assert.Equal(t, byte('0'+i), info.code, info.rate.String())
		if i > 0 {
			assert.Greater(t, info.kbit, bitRates[i-1].kbit)
		}
	}
}
