package slcan

import (
	"bytes"
	"errors"
	"io"
)

// mockPort answers every Read with the next scripted response and records writes
type mockPort struct {
	writes    [][]byte
	responses [][]byte
	readErr   error
	writeErr  error
	reads     int
}

func newMockPort(responses ...string) *mockPort {
	m := &mockPort{}
	for _, r := range responses {
		m.responses = append(m.responses, []byte(r))
	}
	return m
}

func (m *mockPort) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, bytes.Clone(p))
	return len(p), nil
}

func (m *mockPort) Read(p []byte) (int, error) {
	m.reads++
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.responses) == 0 {
		return 0, io.EOF
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	return copy(p, r), nil
}

func (m *mockPort) lastWrite() string {
	if len(m.writes) == 0 {
		return ""
	}
	return string(m.writes[len(m.writes)-1])
}

var errBrokenPort = errors.New("broken port")
