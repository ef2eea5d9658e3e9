package slcan

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	CR  = 0x0D
	BEL = 0x07

	// minFrameLength is the shortest frame line, a standard remote frame: r1230\r
	minFrameLength = 6

	standardIDLength = 3
	extendedIDLength = 8
	timestampLength  = 4
)

var errShortFrame = errors.New("frame too short or unterminated")

// frameCommand selects the leading character from the (extended, remote) matrix
func frameCommand(extended, rtr bool) byte {
	switch {
	case !extended && !rtr:
		return 't'
	case extended && !rtr:
		return 'T'
	case !extended && rtr:
		return 'r'
	default:
		return 'R'
	}
}

// frameType is the inverse of frameCommand
func frameType(c byte) (extended, rtr, ok bool) {
	switch c {
	case 't':
		return false, false, true
	case 'T':
		return true, false, true
	case 'r':
		return false, true, true
	case 'R':
		return true, true, true
	}
	return false, false, false
}

func idLength(extended bool) int {
	if extended {
		return extendedIDLength
	}
	return standardIDLength
}

// EncodeFrame returns the CR terminated command transmitting frame.
//
// SLCAN frame format:
//
//	t<3 hex id><len><hex data>\r  standard data
//	T<8 hex id><len><hex data>\r  extended data
//	r<3 hex id><len>\r            standard remote
//	R<8 hex id><len>\r            extended remote
func EncodeFrame(frame *CANFrame) ([]byte, error) {
	return appendFrame(nil, frame)
}

func appendFrame(buf []byte, frame *CANFrame) ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, newError("encode frame", ErrInvalidInput, err)
	}
	dlc := frame.Length()
	buf = append(buf, frameCommand(frame.Extended, frame.RTR))
	buf = appendID(buf, frame.Identifier, frame.Extended)
	buf = append(buf, '0'+byte(dlc))
	if !frame.RTR {
		buf = appendHex(buf, frame.Data)
	}
	return append(buf, CR), nil
}

// DecodeFrame parses one CR terminated frame line as received from the adapter.
// A trailing timestamp is accepted and dropped.
func DecodeFrame(line []byte) (*CANFrame, error) {
	if len(line) < minFrameLength || line[len(line)-1] != CR {
		return nil, newError("decode frame", ErrInvalidData, errShortFrame)
	}
	if !utf8.Valid(line) {
		return nil, newError("decode frame", ErrInvalidData, errors.New("frame is not valid utf-8"))
	}
	body := line[:len(line)-1]

	extended, rtr, ok := frameType(body[0])
	if !ok {
		return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("unknown frame type %q", body[0]))
	}

	idEnd := 1 + idLength(extended)
	if len(body) < idEnd+1 {
		return nil, newError("decode frame", ErrInvalidData, errShortFrame)
	}
	id, err := parseID(body[1:idEnd])
	if err != nil {
		return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("failed to decode identifier: %w", cause(err)))
	}
	if (extended && id > MaxExtendedID) || (!extended && id > MaxStandardID) {
		return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("identifier 0x%X out of range", id))
	}

	dlcChar := body[idEnd]
	if dlcChar < '0' || dlcChar > '0'+MaxDataLength {
		return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("invalid data length %q", dlcChar))
	}
	dlc := int(dlcChar - '0')

	rest := body[idEnd+1:]
	payloadLength := dlc * 2
	if rtr {
		payloadLength = 0
	}
	switch len(rest) {
	case payloadLength:
	case payloadLength + timestampLength:
		if _, err := DecodeHex(string(rest[payloadLength:])); err != nil {
			return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("failed to decode timestamp: %w", cause(err)))
		}
	default:
		return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("expected %d payload characters, got %d", payloadLength, len(rest)))
	}

	frame := &CANFrame{
		Identifier: id,
		Extended:   extended,
		RTR:        rtr,
	}
	if rtr {
		frame.Data = make([]byte, dlc)
		return frame, nil
	}
	frame.Data, err = DecodeHex(string(rest[:payloadLength]))
	if err != nil {
		return nil, newError("decode frame", ErrInvalidData, fmt.Errorf("failed to decode frame body: %w", cause(err)))
	}
	return frame, nil
}
