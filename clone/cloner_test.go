package clone

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamtools/go-rdtp/protocol"
	"github.com/hamtools/go-rdtp/radio"
)

// mockRadio scripts the device side of a clone session. Every Write is
// recorded and handed to respond to produce the next Read's data; a nil
// response reads back empty, which the cloner treats as garbled.
type mockRadio struct {
	writes    [][]byte
	respond   func(req []byte) []byte
	failWrite func(req []byte) error
	pending   []byte
}

func (m *mockRadio) Write(p []byte) (int, error) {
	frame := append([]byte{}, p...)
	if m.failWrite != nil {
		if err := m.failWrite(frame); err != nil {
			return 0, err
		}
	}
	m.writes = append(m.writes, frame)
	if m.respond != nil {
		m.pending = m.respond(frame)
	}
	return len(p), nil
}

func (m *mockRadio) Read(p []byte) (int, error) {
	n := copy(p, m.pending)
	m.pending = nil
	return n, nil
}

// regionByte is the region id echoed at offset 14 of every frame; for the
// handshake frame it is the first prefix byte, 0x00.
func regionByte(frame []byte) byte { return frame[14] }

// testModel is a small three-region layout that keeps transfers to a
// handful of packets.
func testModel() radio.Model {
	return radio.Model{
		Name:          "HA1G",
		ImageSize:     48,
		ReadChunkSize: 64,
		WritePageSize: 8,
		BaudRate:      115200,
		Regions: []radio.Region{
			{ID: radio.RegionInfo, Name: "info", Offset: 0, Length: 16, DeviceManaged: true},
			{ID: radio.RegionSettings, Name: "settings", Offset: 16, Length: 16},
			{ID: radio.RegionChannels, Name: "channels", Offset: 32, Length: 16},
		},
	}
}

func acceptFrame(t *testing.T, name string) []byte {
	t.Helper()
	frame, err := protocol.BuildPacket(0x00, 0, 0x01, 1, []byte(name))
	require.NoError(t, err)
	return frame
}

func passwordFrame(t *testing.T) []byte {
	t.Helper()
	frame, err := protocol.BuildPacket(0x00, 0, 0x01, 1, []byte{0x01})
	require.NoError(t, err)
	return frame
}

func regionFrame(t *testing.T, id byte, index, count uint16, payload []byte) []byte {
	t.Helper()
	frame, err := protocol.BuildPacket(id, index, protocol.DirectionRead, count, payload)
	require.NoError(t, err)
	return frame
}

func writeAck(t *testing.T, id byte) []byte {
	t.Helper()
	frame, err := protocol.BuildPacket(id, 0, protocol.DirectionWrite, 1, nil)
	require.NoError(t, err)
	return frame
}

// newTestCloner builds a Cloner over the mock with retry pacing removed.
func newTestCloner(t *testing.T, device *mockRadio, opts ...Option) *Cloner {
	t.Helper()
	opts = append([]Option{WithHandshakeDelay(0)}, opts...)
	c := New(device, testModel(), opts...)
	c.sleep = func(time.Duration) {}
	return c
}

func TestNew(t *testing.T) {
	t.Run("nil device panics", func(t *testing.T) {
		require.Panics(t, func() { New(nil, testModel()) })
	})

	t.Run("defaults", func(t *testing.T) {
		c := New(&mockRadio{}, testModel())
		assert.Equal(t, 15, c.cfg.HandshakeAttempts)
		assert.Equal(t, 50*time.Millisecond, c.cfg.HandshakeDelay)
		assert.Nil(t, c.cfg.ProgressCallback)
	})

	t.Run("options applied", func(t *testing.T) {
		c := New(&mockRadio{}, testModel(),
			WithHandshakeAttempts(3),
			WithHandshakeDelay(time.Millisecond),
			WithProgressCallback(func(Progress) {}),
		)
		assert.Equal(t, 3, c.cfg.HandshakeAttempts)
		assert.Equal(t, time.Millisecond, c.cfg.HandshakeDelay)
		assert.NotNil(t, c.cfg.ProgressCallback)
	})

	t.Run("invalid option values keep defaults", func(t *testing.T) {
		c := New(&mockRadio{}, testModel(),
			WithHandshakeAttempts(0),
			WithHandshakeDelay(-time.Second),
		)
		assert.Equal(t, 15, c.cfg.HandshakeAttempts)
		assert.Equal(t, 50*time.Millisecond, c.cfg.HandshakeDelay)
	})
}

func TestHandshakeSendsModelWithTrailingSpace(t *testing.T) {
	device := &mockRadio{
		respond: func(req []byte) []byte { return nil },
	}
	c := newTestCloner(t, device, WithHandshakeAttempts(1))

	_, err := c.CloneFromDevice(context.Background())
	require.ErrorIs(t, err, ErrCommunication)

	want, err := protocol.BuildHandshakePacket("HA1G ")
	require.NoError(t, err)
	require.NotEmpty(t, device.writes)
	assert.Equal(t, want, device.writes[0])
}

func TestHandshakeOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		response func(t *testing.T) []byte
		wantErr  error
	}{
		{
			name:     "password protected",
			response: func(t *testing.T) []byte { return passwordFrame(t) },
			wantErr:  ErrPasswordProtected,
		},
		{
			name:     "model mismatch",
			response: func(t *testing.T) []byte { return acceptFrame(t, "HA1UV") },
			wantErr:  ErrModelMismatch,
		},
		{
			name:     "garbage response",
			response: func(t *testing.T) []byte { return []byte{0xDE, 0xAD} },
			wantErr:  ErrCommunication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := &mockRadio{}
			device.respond = func(req []byte) []byte {
				if regionByte(req) == 0x00 {
					return tt.response(t)
				}
				return nil
			}
			c := newTestCloner(t, device, WithHandshakeAttempts(2))

			img, err := c.CloneFromDevice(context.Background())
			assert.Nil(t, img)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHandshakeRetriesOnlyWhileGarbled(t *testing.T) {
	// Two garbled attempts, then a terminal answer: the loop must stop at
	// the terminal outcome instead of burning the remaining attempts.
	attempt := 0
	device := &mockRadio{}
	device.respond = func(req []byte) []byte {
		if regionByte(req) != 0x00 {
			return nil
		}
		attempt++
		if attempt < 3 {
			return []byte{0x00}
		}
		return passwordFrame(t)
	}
	c := newTestCloner(t, device, WithHandshakeAttempts(15))

	_, err := c.CloneFromDevice(context.Background())
	assert.ErrorIs(t, err, ErrPasswordProtected)
	assert.Equal(t, 3, attempt)
}

func TestHandshakeExhaustsAttempts(t *testing.T) {
	sleeps := 0
	device := &mockRadio{
		respond: func(req []byte) []byte { return []byte{0xFF} },
	}
	c := newTestCloner(t, device, WithHandshakeAttempts(4))
	c.sleep = func(time.Duration) { sleeps++ }

	_, err := c.CloneFromDevice(context.Background())
	assert.ErrorIs(t, err, ErrCommunication)
	assert.Equal(t, 4, sleeps)

	handshakes := 0
	for _, w := range device.writes {
		if regionByte(w) == 0x00 {
			handshakes++
		}
	}
	assert.Equal(t, 4, handshakes)
}

func TestExitPacketSentOnEveryPath(t *testing.T) {
	tests := []struct {
		name    string
		respond func(t *testing.T) func(req []byte) []byte
	}{
		{
			name: "handshake failure",
			respond: func(t *testing.T) func(req []byte) []byte {
				return func(req []byte) []byte { return nil }
			},
		},
		{
			name: "successful download",
			respond: func(t *testing.T) func(req []byte) []byte {
				return func(req []byte) []byte {
					id := regionByte(req)
					if id == 0x00 {
						return acceptFrame(t, "HA1G")
					}
					if id == protocol.RebootRegionID {
						return nil
					}
					return regionFrame(t, id, 0, 1, make([]byte, 16))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := &mockRadio{respond: tt.respond(t)}
			c := newTestCloner(t, device, WithHandshakeAttempts(1))

			_, _ = c.CloneFromDevice(context.Background())

			require.NotEmpty(t, device.writes)
			last := device.writes[len(device.writes)-1]
			assert.Equal(t, byte(protocol.RebootRegionID), regionByte(last))

			want, err := protocol.BuildPacket(protocol.RebootRegionID, 0, protocol.DirectionWrite, 1, []byte{0x00})
			require.NoError(t, err)
			assert.Equal(t, want, last)
		})
	}
}

func TestExitModeErrorOnlyWhenSoleFailure(t *testing.T) {
	newDevice := func(t *testing.T) *mockRadio {
		device := &mockRadio{}
		device.respond = func(req []byte) []byte {
			id := regionByte(req)
			if id == 0x00 {
				return acceptFrame(t, "HA1G")
			}
			return regionFrame(t, id, 0, 1, make([]byte, 16))
		}
		device.failWrite = func(req []byte) error {
			if regionByte(req) == protocol.RebootRegionID {
				return fmt.Errorf("port closed")
			}
			return nil
		}
		return device
	}

	t.Run("surfaced after a clean clone", func(t *testing.T) {
		c := newTestCloner(t, newDevice(t))
		img, err := c.CloneFromDevice(context.Background())
		assert.Nil(t, img)

		var exitErr *ExitModeError
		require.ErrorAs(t, err, &exitErr)
	})

	t.Run("does not mask an earlier error", func(t *testing.T) {
		device := newDevice(t)
		respond := device.respond
		device.respond = func(req []byte) []byte {
			if regionByte(req) == 0x00 {
				return passwordFrame(t)
			}
			return respond(req)
		}
		c := newTestCloner(t, device)

		_, err := c.CloneFromDevice(context.Background())
		assert.ErrorIs(t, err, ErrPasswordProtected)

		var exitErr *ExitModeError
		assert.False(t, errors.As(err, &exitErr))
	})
}

func TestCloneCancelledContext(t *testing.T) {
	device := &mockRadio{}
	c := newTestCloner(t, device)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, err := c.CloneFromDevice(ctx)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, context.Canceled)

	// Even a cancelled session leaves the radio in a usable state.
	require.Len(t, device.writes, 1)
	assert.Equal(t, byte(protocol.RebootRegionID), regionByte(device.writes[0]))
}

func TestCloneToDeviceRejectsBadImage(t *testing.T) {
	device := &mockRadio{}
	c := newTestCloner(t, device)

	err := c.CloneToDevice(context.Background(), nil)
	require.Error(t, err)

	wrong := radio.NewImage(radio.HA1G)
	err = c.CloneToDevice(context.Background(), wrong)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size mismatch")

	// Neither rejection should have touched the port.
	assert.Empty(t, device.writes)
}
