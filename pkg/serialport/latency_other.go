//go:build !linux

package serialport

func setLatencyTimer(string, int) error {
	return nil
}
