package slcan

import "fmt"

type Stats struct {
	SentBytes  uint64
	RecvBytes  uint64
	SentFrames uint64
	RecvFrames uint64
	Errors     uint64
}

func (st Stats) String() string {
	return fmt.Sprintf("sent: %d frames (%d bytes) recv: %d frames (%d bytes) errors: %d",
		st.SentFrames, st.SentBytes, st.RecvFrames, st.RecvBytes, st.Errors)
}

// Stats returns the traffic counters since New
func (sl *SLCan) Stats() Stats {
	return sl.stats
}
