package clone

import (
	"bytes"
	"context"

	"github.com/hamtools/go-rdtp/protocol"
)

// HandshakeStatus is the terminal outcome of a handshake attempt.
type HandshakeStatus int

const (
	// StatusGarbled means no usable response: validation failure,
	// an unexpected marker, or a response too short to classify.
	// It is the only retryable outcome.
	StatusGarbled HandshakeStatus = iota

	// StatusAccepted means the radio echoed the expected model name
	// and is unlocked
	StatusAccepted

	// StatusModelMismatch means the radio answered as a different model
	StatusModelMismatch

	// StatusPasswordProtected means the radio is locked
	StatusPasswordProtected
)

func (s HandshakeStatus) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusModelMismatch:
		return "model mismatch"
	case StatusPasswordProtected:
		return "password protected"
	default:
		return "garbled"
	}
}

// handshake drives the connection exchange: it retries while the outcome is
// garbled, up to the configured attempt bound, and returns the first
// terminal outcome immediately. Exhausting every attempt reports garbled.
// Transport errors abort the loop; they are not a radio saying no.
func (c *Cloner) handshake(ctx context.Context) (HandshakeStatus, error) {
	// The radio expects the model name sent with a trailing space but
	// echoes it back without one.
	frame, err := protocol.BuildHandshakePacket(c.model.Name + " ")
	if err != nil {
		return StatusGarbled, err
	}

	for attempt := 1; attempt <= c.cfg.HandshakeAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return StatusGarbled, err
		}

		resp, ok, err := c.exchange(frame)
		if err != nil {
			return StatusGarbled, err
		}
		c.sleep(c.cfg.HandshakeDelay)

		if !ok {
			c.cfg.Logger.Debug().Int("attempt", attempt).Msg("handshake response failed validation")
			continue
		}

		status := c.classifyHandshake(resp)
		if status != StatusGarbled {
			return status, nil
		}
		c.cfg.Logger.Debug().Int("attempt", attempt).Msg("handshake response garbled")
	}

	return StatusGarbled, nil
}

// classifyHandshake inspects a validated handshake response.
// Bytes [14:16] must carry the 00 01 connect marker; byte 20 equal to 1
// flags password protection; otherwise the bytes at offset 20 must echo the
// model name. Responses too short to classify count as garbled.
func (c *Cloner) classifyHandshake(resp []byte) HandshakeStatus {
	if len(resp) < protocol.HeaderSize+1 {
		return StatusGarbled
	}
	if resp[14] != 0x00 || resp[15] != 0x01 {
		return StatusGarbled
	}
	if resp[20] == 1 {
		return StatusPasswordProtected
	}

	name := []byte(c.model.Name)
	if len(resp) < protocol.HeaderSize+len(name) {
		return StatusGarbled
	}
	if bytes.Equal(resp[protocol.HeaderSize:protocol.HeaderSize+len(name)], name) {
		return StatusAccepted
	}
	return StatusModelMismatch
}
