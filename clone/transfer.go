package clone

import (
	"context"
	"encoding/binary"

	"github.com/hamtools/go-rdtp/protocol"
	"github.com/hamtools/go-rdtp/radio"
)

// progressState tracks cumulative bytes for one transfer direction.
type progressState struct {
	message string
	current int
	total   int
}

// downloadAll pulls every catalogued region into the image, best-effort:
// a region whose exchange fails is logged, left zeroed, and skipped, and
// the loop moves on. Only cancellation stops the whole download.
//
// Deliberately not unified with uploadAll: the failure policies differ and
// sharing the loop would invite sharing the wrong one.
func (c *Cloner) downloadAll(ctx context.Context, img *radio.Image) error {
	prog := &progressState{message: "Cloning from radio", total: c.model.DownloadTotal()}

	for _, region := range c.model.Regions {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := c.downloadRegion(ctx, region, prog)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			c.cfg.Logger.Error().Err(err).Str("region", region.Name).Msg("region read failed, leaving zeros")
			continue
		}

		copied := img.SetRegion(region, data)
		if copied < region.Length {
			c.cfg.Logger.Warn().Str("region", region.Name).
				Int("got", len(data)).Int("want", region.Length).
				Msg("short region transfer")
		}
	}

	return nil
}

// downloadRegion pulls one region as a sequence of read packets. The total
// packet count comes from the first response; each response's payload is
// appended to the region buffer. A response that fails validation, is too
// short, or echoes a different region id aborts the region.
func (c *Cloner) downloadRegion(ctx context.Context, region radio.Region, prog *progressState) ([]byte, error) {
	count := 1
	var buf []byte

	for index := 0; index < count; index++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var indexPayload [2]byte
		binary.LittleEndian.PutUint16(indexPayload[:], uint16(index))

		req, err := protocol.BuildPacket(byte(region.ID), 0, protocol.DirectionRead, 1, indexPayload[:])
		if err != nil {
			return nil, err
		}

		resp, ok, err := c.exchange(req)
		if err != nil {
			return nil, err
		}
		if !ok || len(resp) < protocol.HeaderSize || resp[14] != byte(region.ID) {
			return nil, &RegionError{Region: region.Name, Err: errRadioFailure}
		}

		if index == 0 {
			count = int(binary.LittleEndian.Uint16(resp[18:20]))
		}

		if len(resp) > protocol.MinFrameSize {
			payload := resp[protocol.HeaderSize : len(resp)-protocol.TrailerSize]
			buf = append(buf, payload...)
			prog.current += len(payload)
		}
		c.reportProgress(prog)
	}

	return buf, nil
}

// uploadAll pushes every host-writable region from the image to the radio.
// Unlike download, the first failed region aborts the rest: a partially
// written radio must not be left in an inconsistent state.
func (c *Cloner) uploadAll(ctx context.Context, img *radio.Image) error {
	prog := &progressState{message: "Uploading to radio", total: c.model.UploadTotal()}

	for _, region := range c.model.Regions {
		if region.DeviceManaged {
			continue
		}
		if err := c.uploadRegion(ctx, region, img.RegionSlice(region), prog); err != nil {
			return err
		}
	}

	return nil
}

// uploadRegion pushes one region as write-page sized packets, each carrying
// its index and the constant page count. A region with zero pages is a
// no-op success.
func (c *Cloner) uploadRegion(ctx context.Context, region radio.Region, data []byte, prog *progressState) error {
	pageSize := c.model.WritePageSize
	pages := (len(data) + pageSize - 1) / pageSize
	if pages == 0 {
		return nil
	}

	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := i * pageSize
		end := start + pageSize
		if end > len(data) {
			end = len(data)
		}

		req, err := protocol.BuildPacket(byte(region.ID), uint16(i), protocol.DirectionWrite, uint16(pages), data[start:end])
		if err != nil {
			return err
		}

		resp, ok, err := c.exchange(req)
		if err != nil {
			return err
		}
		if !ok || len(resp) < protocol.HeaderSize || resp[14] != byte(region.ID) {
			return &RegionError{Region: region.Name, Err: errRadioFailure}
		}

		prog.current += end - start
		c.reportProgress(prog)
	}

	return nil
}

// reportProgress calls the progress callback if configured.
func (c *Cloner) reportProgress(prog *progressState) {
	if c.cfg.ProgressCallback != nil {
		c.cfg.ProgressCallback(Progress{
			Message: prog.message,
			Current: prog.current,
			Total:   prog.total,
		})
	}
}
