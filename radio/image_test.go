package radio

import (
	"bytes"
	"testing"
)

func TestNewImageZeroed(t *testing.T) {
	img := NewImage(HA1G)
	if img.Len() != HA1G.ImageSize {
		t.Fatalf("Len() = %d, want %d", img.Len(), HA1G.ImageSize)
	}
	if !bytes.Equal(img.Bytes(), make([]byte, HA1G.ImageSize)) {
		t.Error("new image is not zero-filled")
	}
}

func TestImageFromBytes(t *testing.T) {
	raw := make([]byte, HA1G.ImageSize)
	raw[0] = 0xDE
	raw[len(raw)-1] = 0xAD

	img, err := ImageFromBytes(HA1G, raw)
	if err != nil {
		t.Fatalf("ImageFromBytes() error = %v", err)
	}
	if !bytes.Equal(img.Bytes(), raw) {
		t.Error("image contents differ from input")
	}

	if _, err := ImageFromBytes(HA1G, raw[:len(raw)-1]); err == nil {
		t.Error("ImageFromBytes() expected error for short input")
	}
	if _, err := ImageFromBytes(HA1G, append(raw, 0x00)); err == nil {
		t.Error("ImageFromBytes() expected error for oversized input")
	}
}

func TestSetRegion(t *testing.T) {
	img := NewImage(HA1G)
	settings := HA1G.Regions[3] // settings, offset 92, length 100
	if settings.ID != RegionSettings {
		t.Fatalf("unexpected catalogue order: got region %s", settings.Name)
	}

	t.Run("exact fit", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x5A}, settings.Length)
		n := img.SetRegion(settings, data)
		if n != settings.Length {
			t.Fatalf("SetRegion() = %d, want %d", n, settings.Length)
		}
		if !bytes.Equal(img.RegionSlice(settings), data) {
			t.Error("RegionSlice() does not match written data")
		}
	})

	t.Run("oversized data is truncated", func(t *testing.T) {
		data := bytes.Repeat([]byte{0xA5}, settings.Length+50)
		n := img.SetRegion(settings, data)
		if n != settings.Length {
			t.Fatalf("SetRegion() = %d, want %d", n, settings.Length)
		}
		// The next region must be untouched.
		next := HA1G.Regions[4]
		if !bytes.Equal(img.RegionSlice(next), make([]byte, next.Length)) {
			t.Error("write spilled into adjacent region")
		}
	})

	t.Run("short data leaves tail intact", func(t *testing.T) {
		img := NewImage(HA1G)
		img.SetRegion(settings, bytes.Repeat([]byte{0xFF}, settings.Length))
		n := img.SetRegion(settings, []byte{0x01, 0x02})
		if n != 2 {
			t.Fatalf("SetRegion() = %d, want 2", n)
		}
		got := img.RegionSlice(settings)
		if got[0] != 0x01 || got[1] != 0x02 || got[2] != 0xFF {
			t.Errorf("unexpected region contents: % x", got[:3])
		}
	})
}
