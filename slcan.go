package slcan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// SLCan speaks the LAWICEL ASCII protocol over a transport it owns exclusively.
// Every operation writes one command and performs exactly one read for the
// response. It is not safe for concurrent use.
type SLCan struct {
	port  io.ReadWriter
	buf   receiveBuffer
	out   []byte
	state State
	stats Stats

	log   *slog.Logger
	debug bool
}

func New(port io.ReadWriter, opts ...Opt) *SLCan {
	sl := &SLCan{
		port:  port,
		out:   make([]byte, 0, ReceiveBufferSize),
		state: StateClosed,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(sl)
	}
	return sl
}

// State returns the channel state as tracked by Open and Close
func (sl *SLCan) State() State {
	return sl.state
}

// SetupBitrate selects one of the standard CAN bit rates
func (sl *SLCan) SetupBitrate(rate BitRate) error {
	code, err := rate.Code()
	if err != nil {
		return err
	}
	if err := sl.requireState("setup bitrate", StateClosed); err != nil {
		return err
	}
	return sl.exec("setup bitrate", "S"+string(code))
}

// Open opens the CAN channel
func (sl *SLCan) Open() error {
	if sl.state == StateOpen {
		return newError("open", ErrChannelOpen, nil)
	}
	if err := sl.exec("open", "O"); err != nil {
		return err
	}
	sl.state = StateOpen
	return nil
}

// Close closes the CAN channel
func (sl *SLCan) Close() error {
	if sl.state == StateClosed {
		return newError("close", ErrChannelClosed, nil)
	}
	if err := sl.exec("close", "C"); err != nil {
		return err
	}
	sl.state = StateClosed
	return nil
}

// SetTimestamp toggles the adapter timestamp on received frames
func (sl *SLCan) SetTimestamp(on bool) error {
	if err := sl.requireState("set timestamp", StateClosed); err != nil {
		return err
	}
	if on {
		return sl.exec("set timestamp", "Z1")
	}
	return sl.exec("set timestamp", "Z0")
}

// SetAcceptanceMask sends the M command with mask as 8 big-endian hex digits
func (sl *SLCan) SetAcceptanceMask(mask uint32) error {
	if err := sl.requireState("set acceptance mask", StateClosed); err != nil {
		return err
	}
	b := U32ToBytes(mask)
	return sl.exec("set acceptance mask", "M"+EncodeHex(b[:]))
}

// SetAcceptanceID sends the m command with id as 8 big-endian hex digits
func (sl *SLCan) SetAcceptanceID(id uint32) error {
	if err := sl.requireState("set acceptance id", StateClosed); err != nil {
		return err
	}
	b := U32ToBytes(id)
	return sl.exec("set acceptance id", "m"+EncodeHex(b[:]))
}

// SetFilter programs the acceptance registers so that the given 11-bit ids pass.
// No ids means accept everything. LAWICEL firmware reads the acceptance code from
// the M command and the mask from the m command.
func (sl *SLCan) SetFilter(ids ...uint32) error {
	code, mask := AcceptanceFilter(ids...)
	if err := sl.SetAcceptanceMask(code); err != nil {
		return err
	}
	return sl.SetAcceptanceID(mask)
}

// Write transmits frame and waits for the adapter acknowledgement
func (sl *SLCan) Write(frame *CANFrame) error {
	if err := sl.requireState("write", StateOpen); err != nil {
		return err
	}
	out, err := appendFrame(sl.out[:0], frame)
	if err != nil {
		return err
	}
	sl.out = out
	if err := sl.execRaw("write", out); err != nil {
		return err
	}
	sl.stats.SentFrames++
	return nil
}

// Read blocks for one read from the transport and decodes the result as a frame
func (sl *SLCan) Read() (*CANFrame, error) {
	if err := sl.requireState("read", StateOpen); err != nil {
		return nil, err
	}
	n, err := sl.buf.fill(sl.port)
	if err != nil {
		sl.stats.Errors++
		return nil, newError("read", ErrIO, err)
	}
	sl.stats.RecvBytes += uint64(n)
	if sl.debug && n > 0 {
		sl.log.Debug("<< " + printable(sl.buf.Bytes()))
	}
	last, ok := sl.buf.last()
	if n < minFrameLength || !ok || last != CR {
		if n > 0 {
			sl.stats.Errors++
		}
		return nil, newError("read", ErrInvalidData, errShortFrame)
	}
	frame, err := DecodeFrame(sl.buf.Bytes())
	if err != nil {
		sl.stats.Errors++
		return nil, err
	}
	sl.stats.RecvFrames++
	return frame, nil
}

func (sl *SLCan) requireState(op string, want State) error {
	if sl.state == want {
		return nil
	}
	if sl.state == StateOpen {
		return newError(op, ErrChannelOpen, nil)
	}
	return newError(op, ErrChannelClosed, nil)
}

// exec sends cmd with a trailing CR and reads one response into the receive buffer
func (sl *SLCan) exec(op, cmd string) error {
	out := append(sl.out[:0], cmd...)
	out = append(out, CR)
	sl.out = out
	return sl.execRaw(op, out)
}

func (sl *SLCan) execRaw(op string, cmd []byte) error {
	if err := sl.roundTrip(op, cmd); err != nil {
		sl.stats.Errors++
		return err
	}
	return nil
}

func (sl *SLCan) roundTrip(op string, cmd []byte) error {
	if sl.debug {
		sl.log.Debug(">> " + printable(cmd))
	}
	n, err := sl.port.Write(cmd)
	sl.stats.SentBytes += uint64(n)
	if err != nil {
		sl.buf.reset()
		return newError(op, ErrIO, fmt.Errorf("failed to write to port: %w", err))
	}
	n, err = sl.buf.fill(sl.port)
	if err != nil {
		return newError(op, ErrIO, fmt.Errorf("failed to read from port: %w", err))
	}
	sl.stats.RecvBytes += uint64(n)
	if sl.debug {
		sl.log.Debug("<< " + printable(sl.buf.Bytes()))
	}
	last, ok := sl.buf.last()
	switch {
	case !ok:
		return newError(op, ErrTimedOut, errors.New("no response"))
	case last == BEL:
		return newError(op, ErrTimedOut, errors.New("adapter answered with bell"))
	case last != CR:
		return newError(op, ErrTimedOut, fmt.Errorf("response not terminated: %q", sl.buf.Bytes()))
	}
	return nil
}

// response returns the last response without its terminator
func (sl *SLCan) response() []byte {
	b := sl.buf.Bytes()
	if len(b) > 0 && b[len(b)-1] == CR {
		return b[:len(b)-1]
	}
	return b
}

// printable renders control characters for debug output
func printable(b []byte) string {
	out := make([]byte, 0, len(b)+4)
	for _, c := range b {
		switch c {
		case CR:
			out = append(out, '\\', 'r')
		case BEL:
			out = append(out, '\\', 'a')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
