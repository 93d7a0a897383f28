// Package transport opens the serial connection to a radio in programming
// mode and shapes its reads for the clone engine: one Read fills with
// whatever the radio sent before the line went idle, like a bounded
// read-with-timeout on a traditional serial API.
package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultReadTimeout is the idle time after which a pending read gives up.
// The HA1 radios answer well inside this at 115200 baud.
const DefaultReadTimeout = 2 * time.Second

// Config holds the serial line parameters for a clone session.
type Config struct {
	// BaudRate is the line speed; use the model's BaudRate
	BaudRate int

	// ReadTimeout is the idle bound for a single read.
	// Zero selects DefaultReadTimeout.
	ReadTimeout time.Duration
}

// Port is an open 8N1 serial connection to the radio.
type Port struct {
	port serial.Port
}

// Open opens the named serial port for cloning.
//
// Example:
//
//	port, err := transport.Open("/dev/ttyUSB0", transport.Config{BaudRate: radio.HA1G.BaudRate})
func Open(name string, cfg Config) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}

	return &Port{port: p}, nil
}

// Read accumulates bytes until p is full or the line goes idle for the
// configured timeout. A radio that never answers yields n == 0 with no
// error; the caller's packet validation rejects the empty read.
func (t *Port) Read(p []byte) (int, error) {
	filled := 0
	for filled < len(p) {
		n, err := t.port.Read(p[filled:])
		if err != nil {
			return filled, err
		}
		if n == 0 {
			// read timeout, line idle
			break
		}
		filled += n
	}
	return filled, nil
}

// Write sends p to the radio.
func (t *Port) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

// Close closes the serial port.
func (t *Port) Close() error {
	return t.port.Close()
}
