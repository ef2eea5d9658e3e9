// Package serialport opens SLCAN adapters attached as serial or USB CDC devices.
package serialport

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

const (
	DefaultBaudrate    = 115200
	DefaultReadTimeout = 50 * time.Millisecond
)

var ErrNoPorts = errors.New("no serial ports found")

type Config struct {
	Port        string
	Baudrate    int
	ReadTimeout time.Duration
	// LatencyTimer sets the FTDI latency timer in ms on linux, 0 leaves it alone
	LatencyTimer int
}

// Open opens the configured port 8N1 and drops anything already buffered.
// The read timeout bounds every blocking read the codec performs.
func Open(cfg Config) (serial.Port, error) {
	if cfg.Port == "" {
		return nil, errors.New("no port specified")
	}
	if cfg.Baudrate == 0 {
		cfg.Baudrate = DefaultBaudrate
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	mode := &serial.Mode{
		BaudRate: cfg.Baudrate,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open com port %q : %v", cfg.Port, err)
	}
	if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	if err := p.ResetOutputBuffer(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to reset output buffer: %w", err)
	}
	if err := p.ResetInputBuffer(); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to reset input buffer: %w", err)
	}
	if cfg.LatencyTimer > 0 {
		if err := setLatencyTimer(filepath.Base(cfg.Port), cfg.LatencyTimer); err != nil {
			slog.Warn("latency timer not set", "port", cfg.Port, "err", err)
		}
	}
	return p, nil
}

// List returns the detailed list of serial ports on this machine
func List() ([]*enumerator.PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	if len(ports) == 0 {
		return nil, ErrNoPorts
	}
	return ports, nil
}

// Resolve matches name against the available ports, case insensitive on windows
func Resolve(name string, ports []*enumerator.PortDetails) (string, error) {
	for _, port := range ports {
		if portEqual(port.Name, name) {
			return port.Name, nil
		}
	}
	return "", fmt.Errorf("port %q not found", name)
}

func portEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Describe renders a port with its USB details, one line per port
func Describe(port *enumerator.PortDetails) string {
	if !port.IsUSB {
		return port.Name
	}
	desc := fmt.Sprintf("%s  USB ID %s:%s", port.Name, port.VID, port.PID)
	if port.SerialNumber != "" {
		desc += "  serial " + port.SerialNumber
	}
	if port.Product != "" {
		desc += "  " + port.Product
	}
	return desc
}
