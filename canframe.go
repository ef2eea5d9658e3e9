package slcan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	// MaxDataLength is the largest payload a classic CAN frame carries
	MaxDataLength = 8

	// MaxStandardID is the largest 11-bit identifier
	MaxStandardID = 0x7FF
	// MaxExtendedID is the largest 29-bit identifier
	MaxExtendedID = 0x1FFFFFFF
)

type CANFrame struct {
	Identifier uint32
	Extended   bool
	RTR        bool
	Data       []byte
}

// NewFrame creates a new standard data frame and copies the data slice
func NewFrame(identifier uint32, data []byte) *CANFrame {
	d := make([]byte, len(data))
	copy(d, data)
	return &CANFrame{
		Identifier: identifier,
		Data:       d,
	}
}

// NewExtendedFrame creates a new extended data frame and copies the data slice
func NewExtendedFrame(identifier uint32, data []byte) *CANFrame {
	frame := NewFrame(identifier, data)
	frame.Extended = true
	return frame
}

// NewRemoteFrame creates a remote transmission request. The requested length is
// carried in the DLC only, the payload stays empty on the wire. length is
// clamped to 0..MaxDataLength.
func NewRemoteFrame(identifier uint32, extended bool, length int) *CANFrame {
	return &CANFrame{
		Identifier: identifier,
		Extended:   extended,
		RTR:        true,
		Data:       make([]byte, min(max(length, 0), MaxDataLength)),
	}
}

// Length returns the data length code
func (f *CANFrame) Length() int {
	return len(f.Data)
}

// Validate checks the identifier width and payload length
func (f *CANFrame) Validate() error {
	if len(f.Data) > MaxDataLength {
		return fmt.Errorf("data length %d exceeds %d bytes", len(f.Data), MaxDataLength)
	}
	if f.Extended {
		if f.Identifier > MaxExtendedID {
			return fmt.Errorf("extended identifier 0x%X exceeds 29 bits", f.Identifier)
		}
		return nil
	}
	if f.Identifier > MaxStandardID {
		return fmt.Errorf("standard identifier 0x%X exceeds 11 bits", f.Identifier)
	}
	return nil
}

// Equal reports whether two frames carry the same type, identifier and payload.
// For remote frames only the length is compared.
func (f *CANFrame) Equal(o *CANFrame) bool {
	if f.Identifier != o.Identifier || f.Extended != o.Extended || f.RTR != o.RTR {
		return false
	}
	if len(f.Data) != len(o.Data) {
		return false
	}
	if f.RTR {
		return true
	}
	for i := range f.Data {
		if f.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

var (
	blue   = color.New(color.FgHiBlue).SprintfFunc()
	red    = color.New(color.FgRed).SprintfFunc()
	green  = color.New(color.FgGreen).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

func (f *CANFrame) idString() string {
	if f.Extended {
		return fmt.Sprintf("0x%08X", f.Identifier)
	}
	return fmt.Sprintf("0x%03X", f.Identifier)
}

func (f *CANFrame) hexView() string {
	if f.RTR {
		return "RTR"
	}
	var hexView strings.Builder
	for i, b := range f.Data {
		hexView.WriteString(fmt.Sprintf("%02X", b))
		if i != len(f.Data)-1 {
			hexView.WriteString(" ")
		}
	}
	return hexView.String()
}

func (f *CANFrame) String() string {
	var out strings.Builder
	out.WriteString(f.idString() + " || ")
	out.WriteString(strconv.Itoa(len(f.Data)) + " || ")
	out.WriteString(fmt.Sprintf("%-23s", f.hexView()))
	if !f.RTR {
		out.WriteString(" || ")
		out.WriteString(onlyPrintable(f.Data))
	}
	return out.String()
}

// ColorString is String with the identifier, payload and ascii view highlighted
func (f *CANFrame) ColorString() string {
	var out strings.Builder
	if f.Extended {
		out.WriteString(blue(f.idString()) + " || ")
	} else {
		out.WriteString(green(f.idString()) + " || ")
	}
	out.WriteString(strconv.Itoa(len(f.Data)) + " || ")
	if f.RTR {
		out.WriteString(red(f.hexView()))
		return out.String()
	}
	out.WriteString(fmt.Sprintf("%-23s", f.hexView()))
	out.WriteString(" || ")
	out.WriteString(yellow(onlyPrintable(f.Data)))
	return out.String()
}

func onlyPrintable(data []byte) string {
	var out strings.Builder
	for _, b := range data {
		if b < 32 || b > 126 {
			out.WriteString("·")
		} else {
			out.WriteByte(b)
		}
	}
	return out.String()
}
