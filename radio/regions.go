package radio

// RegionID identifies a logical memory region on the wire. The values are
// the region ids the radio firmware understands; they are sparse and fixed.
type RegionID byte

const (
	RegionHead     RegionID = 2
	RegionInfo     RegionID = 3
	RegionVersion  RegionID = 4
	RegionSettings RegionID = 6
	RegionZones    RegionID = 7
	RegionChannels RegionID = 8
	RegionScan     RegionID = 11
	RegionVFOScan  RegionID = 12
	RegionAlarm    RegionID = 13
	RegionDTMF     RegionID = 15
)

// Region describes one named slice of the device image.
type Region struct {
	// ID is the wire identifier for the region
	ID RegionID

	// Name is a short human-readable label used in logs and errors
	Name string

	// Offset is the region's start within the device image
	Offset int

	// Length is the region's size in bytes
	Length int

	// DeviceManaged regions are read during download but never written
	// back: the radio owns their contents
	DeviceManaged bool
}

// End returns the exclusive end offset of the region within the image.
func (r Region) End() int { return r.Offset + r.Length }
