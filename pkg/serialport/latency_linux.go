package serialport

import (
	"fmt"
	"os"
	"strconv"
)

// setLatencyTimer lowers the FTDI latency timer, the default 16ms delays every
// short response the adapter sends
func setLatencyTimer(device string, latency int) error {
	latencyPath := fmt.Sprintf("/sys/bus/usb-serial/devices/%s/latency_timer", device)
	if err := os.WriteFile(latencyPath, []byte(strconv.Itoa(latency)), 0644); err != nil {
		return fmt.Errorf("failed to set latency timer: %w", err)
	}
	return nil
}
