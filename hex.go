package slcan

import (
	"encoding/binary"
	"fmt"
)

const hexDigits = "0123456789ABCDEF"

// helper converts a 0..15 value to its ASCII hex nibble
func nybbleToHex(n byte) byte {
	return hexDigits[n&0x0F]
}

// helper converts an ASCII hex character to its value, both cases are accepted
func hexToNybble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func appendHex(dst []byte, src []byte) []byte {
	for _, b := range src {
		dst = append(dst, nybbleToHex(b>>4), nybbleToHex(b))
	}
	return dst
}

// EncodeHex returns two uppercase hex characters per input byte, high nibble first
func EncodeHex(data []byte) string {
	return string(appendHex(make([]byte, 0, len(data)*2), data))
}

// DecodeHex is the inverse of EncodeHex. Every character is validated on its own,
// an odd length or a non hex character fails with ErrInvalidInput.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, newError("decode hex", ErrInvalidInput, fmt.Errorf("odd length %d", len(s)))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := hexToNybble(s[i])
		if !ok {
			return nil, newError("decode hex", ErrInvalidInput, fmt.Errorf("invalid character %q at offset %d", s[i], i))
		}
		lo, ok := hexToNybble(s[i+1])
		if !ok {
			return nil, newError("decode hex", ErrInvalidInput, fmt.Errorf("invalid character %q at offset %d", s[i+1], i+1))
		}
		out[i/2] = hi<<4 | lo
	}
	return out, nil
}

// U32ToBytes returns n as 4 big-endian bytes
func U32ToBytes(n uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return b
}

// BytesToU32 reads a big-endian uint32 from the first 4 bytes of b
func BytesToU32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, newError("bytes to u32", ErrInvalidInput, fmt.Errorf("need 4 bytes, got %d", len(b)))
	}
	return binary.BigEndian.Uint32(b), nil
}

// appendID writes the identifier as 3 hex characters for standard frames and
// 8 for extended frames, masked to 11 and 29 bits respectively.
func appendID(dst []byte, id uint32, extended bool) []byte {
	if extended {
		b := U32ToBytes(id & MaxExtendedID)
		return appendHex(dst, b[:])
	}
	id &= MaxStandardID
	return append(dst, nybbleToHex(byte(id>>8)), nybbleToHex(byte(id>>4)), nybbleToHex(byte(id)))
}

// parseID decodes a 3 or 8 character identifier field, the field is left padded
// to a full 32-bit value before decoding.
func parseID(field []byte) (uint32, error) {
	if len(field) > 8 {
		return 0, fmt.Errorf("identifier field too long: %d", len(field))
	}
	padded := []byte("00000000")
	copy(padded[8-len(field):], field)
	b, err := DecodeHex(string(padded))
	if err != nil {
		return 0, err
	}
	return BytesToU32(b)
}
