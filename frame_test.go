package slcan

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame *CANFrame
		want  string
	}{
		{
			name:  "standard data",
			frame: NewFrame(0x123, []byte{0xAA, 0xBB}),
			want:  "t1232AABB\r",
		},
		{
			name:  "extended empty",
			frame: NewExtendedFrame(0x1ABCDE, nil),
			want:  "T001ABCDE0\r",
		},
		{
			name:  "standard remote",
			frame: NewRemoteFrame(0x7FF, false, 4),
			want:  "r7FF4\r",
		},
		{
			name:  "extended remote",
			frame: NewRemoteFrame(0x1FFFFFFF, true, 0),
			want:  "R1FFFFFFF0\r",
		},
		{
			name:  "full payload",
			frame: NewFrame(0x001, []byte{1, 2, 3, 4, 5, 6, 7, 8}),
			want:  "t00180102030405060708\r",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeFrame(tt.frame)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeFrameInvalid(t *testing.T) {
	tests := []struct {
		name  string
		frame *CANFrame
	}{
		{name: "standard id too wide", frame: NewFrame(0x800, nil)},
		{name: "extended id too wide", frame: NewExtendedFrame(0x20000000, nil)},
		{name: "payload too long", frame: NewFrame(0x100, make([]byte, 9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeFrame(tt.frame)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *CANFrame
	}{
		{
			name: "standard data",
			line: "t1232AABB\r",
			want: NewFrame(0x123, []byte{0xAA, 0xBB}),
		},
		{
			name: "lowercase payload",
			line: "t1232aabb\r",
			want: NewFrame(0x123, []byte{0xAA, 0xBB}),
		},
		{
			name: "extended data",
			line: "T1FFFFFFF3010203\r",
			want: NewExtendedFrame(0x1FFFFFFF, []byte{1, 2, 3}),
		},
		{
			name: "standard remote",
			line: "r1230\r",
			want: NewRemoteFrame(0x123, false, 0),
		},
		{
			name: "extended remote",
			line: "R000001008\r",
			want: NewRemoteFrame(0x100, true, 8),
		},
		{
			name: "timestamp dropped",
			line: "t1001FF1A2B\r",
			want: NewFrame(0x100, []byte{0xFF}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFrame([]byte(tt.line))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestDecodeFrameInvalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too short", line: "t123\r"},
		{name: "unterminated", line: "t1232AABB"},
		{name: "newline terminated", line: "t1232AABB\n"},
		{name: "unknown type", line: "x1232AABB\r"},
		{name: "bad id", line: "t12G2AABB\r"},
		{name: "standard id out of range", line: "tFFF0\r"},
		{name: "extended id out of range", line: "TFFFFFFFF0\r"},
		{name: "extended too short", line: "T0000\r"},
		{name: "bad dlc", line: "t1239AABB\r"},
		{name: "dlc not a digit", line: "t123AAABB\r"},
		{name: "payload shorter than dlc", line: "t1233AABB\r"},
		{name: "payload longer than dlc", line: "t1231AABB\r"},
		{name: "bad payload", line: "t1232AAZZ\r"},
		{name: "invalid utf8", line: "t1232\xff\xfeBB\r"},
		{name: "bad timestamp", line: "t1000ZZ!!\r"},
		{name: "timestamp with control bytes", line: "t1001FF\x00\x00\x00\x00\r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFrame([]byte(tt.line))
			assert.ErrorIs(t, err, ErrInvalidData)
			assert.NotErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, ErrInvalidData, Kind(err))
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	f := func(id uint32, extended, rtr bool, data []byte) bool {
		if extended {
			id &= MaxExtendedID
		} else {
			id &= MaxStandardID
		}
		if len(data) > MaxDataLength {
			data = data[:MaxDataLength]
		}
		frame := &CANFrame{Identifier: id, Extended: extended, RTR: rtr, Data: data}
		if rtr {
			frame.Data = make([]byte, len(data))
		}
		line, err := EncodeFrame(frame)
		if err != nil {
			return false
		}
		got, err := DecodeFrame(line)
		if err != nil {
			return false
		}
		return frame.Equal(got)
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 1000}))
}

func BenchmarkEncodeFrame(b *testing.B) {
	b.ReportAllocs()
	frame := NewExtendedFrame(0x1ABCDE, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	buf := make([]byte, 0, ReceiveBufferSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := appendFrame(buf[:0], frame); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeFrame(b *testing.B) {
	b.ReportAllocs()
	line := []byte("T001ABCDE80102030405060708\r")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeFrame(line); err != nil {
			b.Fatal(err)
		}
	}
}
