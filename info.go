package slcan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albenik/bcd"
)

type Version struct {
	Hardware string
	Software string
}

func (v Version) String() string {
	return fmt.Sprintf("hw %s sw %s", v.Hardware, v.Software)
}

// Version queries hardware and software version with the V command.
// The adapter answers Vhhss where each pair is a BCD major/minor version.
func (sl *SLCan) Version() (Version, error) {
	if err := sl.exec("version", "V"); err != nil {
		return Version{}, err
	}
	resp := sl.response()
	if len(resp) != 5 || resp[0] != 'V' {
		return Version{}, newError("version", ErrInvalidData, fmt.Errorf("unexpected response %q", resp))
	}
	b, err := DecodeHex(string(resp[1:]))
	if err != nil {
		return Version{}, newError("version", ErrInvalidData, cause(err))
	}
	for _, v := range b {
		if v>>4 > 9 || v&0x0F > 9 {
			return Version{}, newError("version", ErrInvalidData, fmt.Errorf("invalid bcd digit in %q", resp))
		}
	}
	return Version{
		Hardware: bcdVersion(b[0]),
		Software: bcdVersion(b[1]),
	}, nil
}

func bcdVersion(b byte) string {
	v := bcd.ToUint8(b)
	return fmt.Sprintf("%d.%d", v/10, v%10)
}

// SerialNumber queries the adapter serial number with the N command
func (sl *SLCan) SerialNumber() (string, error) {
	if err := sl.exec("serial number", "N"); err != nil {
		return "", err
	}
	resp := sl.response()
	if len(resp) < 2 || resp[0] != 'N' {
		return "", newError("serial number", ErrInvalidData, fmt.Errorf("unexpected response %q", resp))
	}
	return string(resp[1:]), nil
}

// StatusFlags mirrors the SJA1000 status bits reported by the F command
type StatusFlags uint8

const (
	StatusReceiveFIFOFull StatusFlags = 1 << iota
	StatusTransmitFIFOFull
	StatusErrorWarning
	StatusDataOverrun
	_
	StatusErrorPassive
	StatusArbitrationLost
	StatusBusError
)

var statusNames = []struct {
	flag StatusFlags
	err  error
}{
	{StatusReceiveFIFOFull, errors.New("CAN receive FIFO queue full")},
	{StatusTransmitFIFOFull, errors.New("CAN transmit FIFO queue full")},
	{StatusErrorWarning, errors.New("error warning (EI)")},
	{StatusDataOverrun, errors.New("data overrun (DOI)")},
	{StatusErrorPassive, errors.New("error passive (EPI)")},
	{StatusArbitrationLost, errors.New("arbitration lost (ALI)")},
	{StatusBusError, errors.New("bus error (BEI)")},
}

// Err joins an error for every flag set, nil when the bus is healthy
func (s StatusFlags) Err() error {
	var errs []error
	for _, n := range statusNames {
		if s&n.flag != 0 {
			errs = append(errs, n.err)
		}
	}
	return errors.Join(errs...)
}

func (s StatusFlags) String() string {
	if s == 0 {
		return "ok"
	}
	var out []string
	for _, n := range statusNames {
		if s&n.flag != 0 {
			out = append(out, n.err.Error())
		}
	}
	return strings.Join(out, ", ")
}

// Status reads the status flags with the F command, the channel must be open
func (sl *SLCan) Status() (StatusFlags, error) {
	if err := sl.requireState("status", StateOpen); err != nil {
		return 0, err
	}
	if err := sl.exec("status", "F"); err != nil {
		return 0, err
	}
	resp := sl.response()
	if len(resp) != 3 || resp[0] != 'F' {
		return 0, newError("status", ErrInvalidData, fmt.Errorf("unexpected response %q", resp))
	}
	b, err := DecodeHex(string(resp[1:]))
	if err != nil {
		return 0, newError("status", ErrInvalidData, cause(err))
	}
	return StatusFlags(b[0]), nil
}
