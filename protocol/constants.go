package protocol

// Magic is the 12-byte preamble that opens every RDTP frame.
// The radio sends the same preamble on every frame it returns.
var Magic = []byte{'R', 'D', 'T', 'P', 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// Frame structure constants.
const (
	// MagicSize is the length of the Magic preamble
	MagicSize = 12

	// HeaderSize is the offset of the payload within a frame:
	// MAGIC(12) + LEN(2) + REGION(1) + DIR(1) + INDEX(2) + COUNT(2)
	HeaderSize = 20

	// TrailerSize is CHECKSUM(2) + SENTINEL(1)
	TrailerSize = 3

	// MinFrameSize is the size of a frame with an empty payload
	MinFrameSize = HeaderSize + TrailerSize

	// FrameOverhead is the non-payload byte count used by the validation
	// length bound: MAGIC(12) + LEN(2) + CHECKSUM(2) + SENTINEL(1).
	// The remaining 6 header bytes are covered by the declared length
	// field instead.
	FrameOverhead = 17

	// Sentinel is the single byte terminating every frame (0xFF)
	Sentinel = 0xFF

	// DeclaredLengthBias is added to the payload length to form the
	// 16-bit declared length at offset 12
	DeclaredLengthBias = 6

	// MaxPayloadSize is the largest payload whose declared length still
	// fits in the 16-bit length field
	MaxPayloadSize = 0xFFFF - DeclaredLengthBias
)

// Direction codes carried at frame offset 15.
const (
	// DirectionWrite pushes a payload into device memory
	DirectionWrite = 0x00

	// DirectionRead requests a region packet from device memory
	DirectionRead = 0x02
)

// HandshakeNameFieldSize is the fixed width of the model name field in a
// handshake payload: the ASCII name NUL-padded to 41 bytes.
const HandshakeNameFieldSize = 41

// handshakePrefix precedes the model name in the handshake payload.
var handshakePrefix = []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00}

// RebootRegionID is the pseudo region addressed by the exit-programming-mode
// packet. Writing a single zero byte to it makes the radio leave programming
// mode and reboot.
const RebootRegionID = 111

// largeChunkPacketCount is the packet-count multiplier used by the
// validation length bound when the transport chunk size exceeds 255 bytes.
// Smaller chunk sizes use chunkSize+1: Retevis firmware that sends 250-byte
// packets encodes the total count differently, and this boundary reproduces
// the observed behavior of both variants. Not verified beyond those two
// chunk sizes; treat it as configuration.
const largeChunkPacketCount = 256
