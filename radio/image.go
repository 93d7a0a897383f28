package radio

import "fmt"

// Image is the flat byte buffer mirroring the radio's memory as the host
// understands it. Its length is fixed by the model and never changes;
// regions that were never transferred stay zeroed.
//
// An Image is owned by a single clone session while a transfer is running
// and handed to callers as an opaque buffer once complete.
type Image struct {
	data []byte
}

// NewImage returns a zero-filled image sized for the model.
func NewImage(m Model) *Image {
	return &Image{data: make([]byte, m.ImageSize)}
}

// ImageFromBytes wraps raw as a device image for the model. The buffer must
// be exactly the model's image size.
func ImageFromBytes(m Model, raw []byte) (*Image, error) {
	if len(raw) != m.ImageSize {
		return nil, fmt.Errorf("image size mismatch for %s: got %d bytes, expected %d", m.Name, len(raw), m.ImageSize)
	}
	img := &Image{data: make([]byte, m.ImageSize)}
	copy(img.data, raw)
	return img, nil
}

// Len returns the image size in bytes.
func (i *Image) Len() int { return len(i.data) }

// Bytes returns the backing buffer. The slice aliases the image; callers
// that keep it past the image's lifetime should copy it.
func (i *Image) Bytes() []byte { return i.data }

// RegionSlice returns the image bytes covered by the region.
func (i *Image) RegionSlice(r Region) []byte {
	return i.data[r.Offset:r.End()]
}

// SetRegion copies data into the image at the region's offset, truncating
// to the region length. It returns the number of bytes copied; a short
// source leaves the remainder of the region untouched.
func (i *Image) SetRegion(r Region, data []byte) int {
	return copy(i.data[r.Offset:r.End()], data)
}
