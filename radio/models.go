package radio

import "strings"

// Model describes one radio variant: its identity on the wire, the
// dimensions of its memory image, and the transfer sizes its firmware
// expects. Model values are static configuration, safe to copy.
type Model struct {
	// Name is the ASCII model name exchanged during the handshake
	Name string

	// ImageSize is the fixed size of the device image in bytes
	ImageSize int

	// ReadChunkSize is the bounded read size for a single response
	ReadChunkSize int

	// WritePageSize is the payload size of a single upload packet
	WritePageSize int

	// BaudRate is the serial line speed in programming mode
	BaudRate int

	// Regions is the ordered memory region catalogue
	Regions []Region
}

// ha1Regions is the memory layout shared by the HA1 series. Regions are
// non-overlapping, ordered, and stay inside the 0xD868-byte image. The
// head, info, version, and zone blocks are maintained by the radio itself
// and are never pushed back during upload.
var ha1Regions = []Region{
	{ID: RegionHead, Name: "head", Offset: 0, Length: 14, DeviceManaged: true},
	{ID: RegionInfo, Name: "info", Offset: 14, Length: 68, DeviceManaged: true},
	{ID: RegionVersion, Name: "version", Offset: 82, Length: 10, DeviceManaged: true},
	{ID: RegionSettings, Name: "settings", Offset: 92, Length: 100},
	{ID: RegionZones, Name: "zones", Offset: 192, Length: 3202, DeviceManaged: true},
	{ID: RegionChannels, Name: "channels", Offset: 3394, Length: 43136},
	{ID: RegionScan, Name: "scan", Offset: 46530, Length: 3618},
	{ID: RegionVFOScan, Name: "vfoscan", Offset: 50148, Length: 68},
	{ID: RegionAlarm, Name: "alarm", Offset: 50244, Length: 258},
	{ID: RegionDTMF, Name: "dtmf", Offset: 51272, Length: 842},
}

// HA1G is the Retevis HA1G.
var HA1G = Model{
	Name:          "HA1G",
	ImageSize:     0xD868,
	ReadChunkSize: 1047,
	WritePageSize: 1024,
	BaudRate:      115200,
	Regions:       ha1Regions,
}

// HA1UV is the Retevis HA1UV. It shares the HA1G memory layout and
// transfer parameters; only the name it answers the handshake with differs.
var HA1UV = Model{
	Name:          "HA1UV",
	ImageSize:     0xD868,
	ReadChunkSize: 1047,
	WritePageSize: 1024,
	BaudRate:      115200,
	Regions:       ha1Regions,
}

// Models lists every supported radio variant.
var Models = []Model{HA1G, HA1UV}

// ModelByName looks up a supported model by its name, case-insensitively.
func ModelByName(name string) (Model, bool) {
	for _, m := range Models {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Model{}, false
}

// DownloadTotal returns the number of image bytes moved by a full
// download: the sum of all region lengths.
func (m Model) DownloadTotal() int {
	total := 0
	for _, r := range m.Regions {
		total += r.Length
	}
	return total
}

// UploadTotal returns the number of image bytes moved by a full upload:
// the sum of the host-writable region lengths.
func (m Model) UploadTotal() int {
	total := 0
	for _, r := range m.Regions {
		if !r.DeviceManaged {
			total += r.Length
		}
	}
	return total
}
