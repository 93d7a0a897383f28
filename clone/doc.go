// Package clone implements cloning sessions against Retevis HA1-series
// radios: the handshake that proves the right model is present and
// unlocked, the region-by-region transfer of the device image, and the
// session bookkeeping around them.
//
// # Basic Usage
//
//	port, err := transport.Open("/dev/ttyUSB0", transport.Config{BaudRate: radio.HA1G.BaudRate})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	c := clone.New(port, radio.HA1G)
//
//	img, err := c.CloneFromDevice(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("backup.img", img.Bytes(), 0o644)
//
// Uploading works the same way from an existing image:
//
//	img, err := radio.ImageFromBytes(radio.HA1G, raw)
//	err = c.CloneToDevice(context.Background(), img)
//
// # Failure Model
//
// Download is best-effort per region: a region the radio refuses to send is
// left zeroed in the image and the clone still succeeds. Upload is the
// opposite: the first refused region aborts the operation, because a
// half-written radio is worse than an unwritten one.
//
// Every clone ends by telling the radio to leave programming mode and
// reboot, whether the transfer succeeded, failed, or panicked. Errors reach
// the caller as ErrModelMismatch, ErrPasswordProtected, or
// ErrCommunication; anything more detailed is written to the configured
// zerolog logger.
//
// # Hardware Independence
//
// The Cloner talks to an io.ReadWriter. Real radios are reached through the
// transport package; tests substitute an in-memory device.
package clone
