package clone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hamtools/go-rdtp/protocol"
	"github.com/hamtools/go-rdtp/radio"
)

// Cloner clones configuration memory between the host and one radio over a
// serial link. It owns the transport and the in-flight device image for the
// duration of a clone operation; concurrent sessions on one Cloner are not
// supported.
//
// The transport only needs io.ReadWriter. Reads must be bounded: a single
// Read should return whatever the radio sent before the line went idle,
// which is what transport.Port provides for real hardware.
type Cloner struct {
	device io.ReadWriter
	model  radio.Model
	cfg    Config

	// sleep paces handshake retries; swapped out in tests
	sleep func(time.Duration)
}

// New creates a Cloner for the given transport and radio model.
//
// Example:
//
//	port, _ := transport.Open("/dev/ttyUSB0", transport.Config{BaudRate: radio.HA1G.BaudRate})
//	c := clone.New(port, radio.HA1G,
//	    clone.WithLogger(logger),
//	    clone.WithProgressCallback(progressFunc),
//	)
func New(device io.ReadWriter, model radio.Model, opts ...Option) *Cloner {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cloner{
		device: device,
		model:  model,
		cfg:    cfg,
		sleep:  time.Sleep,
	}
}

// CloneFromDevice performs a full download: handshake, then every
// catalogued region pulled into a fresh device image. Regions whose
// exchange fails are logged and left zeroed; the download still succeeds.
//
// The exit-programming-mode packet is sent on every path out of this
// method, including panics. Failures map to ErrModelMismatch,
// ErrPasswordProtected, or ErrCommunication; context errors pass through.
func (c *Cloner) CloneFromDevice(ctx context.Context) (img *radio.Image, err error) {
	defer func() {
		err = c.endSession(recover(), err)
		if err != nil {
			img = nil
		}
	}()

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	img = radio.NewImage(c.model)
	if err := c.downloadAll(ctx, img); err != nil {
		return nil, c.normalize(err)
	}

	c.cfg.Logger.Info().Str("model", c.model.Name).Int("bytes", img.Len()).Msg("download complete")
	return img, nil
}

// CloneToDevice performs a full upload: handshake, then every host-writable
// region pushed from the image. The first failed region aborts the upload.
// Exit-programming-mode is guaranteed exactly as for CloneFromDevice.
func (c *Cloner) CloneToDevice(ctx context.Context, img *radio.Image) (err error) {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}
	if img.Len() != c.model.ImageSize {
		return fmt.Errorf("image size mismatch for %s: got %d bytes, expected %d",
			c.model.Name, img.Len(), c.model.ImageSize)
	}

	defer func() {
		err = c.endSession(recover(), err)
	}()

	if err := c.connect(ctx); err != nil {
		return err
	}

	if err := c.uploadAll(ctx, img); err != nil {
		return c.normalize(err)
	}

	c.cfg.Logger.Info().Str("model", c.model.Name).Msg("upload complete")
	return nil
}

// connect runs the handshake and maps its outcome onto the error taxonomy.
func (c *Cloner) connect(ctx context.Context) error {
	status, err := c.handshake(ctx)
	if err != nil {
		return c.normalize(err)
	}

	switch status {
	case StatusAccepted:
		return nil
	case StatusModelMismatch:
		return ErrModelMismatch
	case StatusPasswordProtected:
		return ErrPasswordProtected
	default:
		return ErrCommunication
	}
}

// endSession is the guaranteed tail of every clone operation: it recovers a
// panic into the generic communication error and attempts the
// exit-programming-mode packet. An exit failure is surfaced only when it is
// the sole failure; it never masks an earlier error.
func (c *Cloner) endSession(panicked any, err error) error {
	if panicked != nil {
		c.cfg.Logger.Error().Interface("panic", panicked).Msg("unexpected failure during clone")
		err = ErrCommunication
	}

	if exitErr := c.exitProgrammingMode(); exitErr != nil {
		if err == nil {
			return &ExitModeError{Err: exitErr}
		}
		c.cfg.Logger.Warn().Err(exitErr).Msg("radio refused to exit programming mode")
	}

	return err
}

// exitProgrammingMode tells the radio to leave programming mode and reboot.
// Fire and forget: the radio resets without answering, so only the write is
// checked.
func (c *Cloner) exitProgrammingMode() error {
	frame, err := protocol.BuildPacket(protocol.RebootRegionID, 0, protocol.DirectionWrite, 1, []byte{0x00})
	if err != nil {
		return err
	}
	if _, err := c.device.Write(frame); err != nil {
		return err
	}
	return nil
}

// exchange writes one frame and reads the radio's reply, bounded by the
// model's read chunk size. ok reports whether the reply passed packet
// validation; err is reserved for transport failures.
func (c *Cloner) exchange(frame []byte) (resp []byte, ok bool, err error) {
	if _, err := c.device.Write(frame); err != nil {
		return nil, false, fmt.Errorf("write packet: %w", err)
	}

	buf := make([]byte, c.model.ReadChunkSize)
	n, err := c.device.Read(buf)
	if err != nil {
		return nil, false, fmt.Errorf("read packet: %w", err)
	}

	resp = buf[:n]
	return resp, protocol.ValidatePacket(resp, c.model.ReadChunkSize), nil
}

// normalize folds an internal error into the operator-facing taxonomy.
// Named errors and context errors pass through; everything else is logged
// and reported as the generic communication failure.
func (c *Cloner) normalize(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrModelMismatch),
		errors.Is(err, ErrPasswordProtected),
		errors.Is(err, ErrCommunication),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		c.cfg.Logger.Error().Err(err).Msg("clone failed")
		return ErrCommunication
	}
}
