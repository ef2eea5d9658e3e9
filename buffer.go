package slcan

import "io"

// ReceiveBufferSize is large enough for the longest frame line: an extended data
// frame with 8 bytes of payload and a timestamp.
const ReceiveBufferSize = 32

// receiveBuffer is reused for every response. The valid length is reset before
// each read so bytes from an earlier call are never observed.
type receiveBuffer struct {
	data [ReceiveBufferSize]byte
	n    int
}

// fill performs exactly one Read from r
func (b *receiveBuffer) fill(r io.Reader) (int, error) {
	b.n = 0
	n, err := r.Read(b.data[:])
	if err != nil {
		return 0, err
	}
	b.n = n
	return n, nil
}

func (b *receiveBuffer) Bytes() []byte {
	return b.data[:b.n]
}

func (b *receiveBuffer) Len() int {
	return b.n
}

// last returns the final valid byte, ok is false for an empty buffer
func (b *receiveBuffer) last() (byte, bool) {
	if b.n == 0 {
		return 0, false
	}
	return b.data[b.n-1], true
}

func (b *receiveBuffer) reset() {
	b.n = 0
}
