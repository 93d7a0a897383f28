package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ValidatePacket reports whether raw is a plausible, correctly checksummed
// RDTP frame. chunkSize is the transport's bounded read size; it selects the
// packet-count multiplier for the length bound below.
//
// The check fails closed on anything 13 bytes or shorter. It then derives a
// payload-length lower bound from the two declared-length bytes — byte 12
// contributes its excess over DeclaredLengthBias, byte 13 is scaled by
// largeChunkPacketCount (or chunkSize+1 when the chunk fits a single byte) —
// and rejects frames whose length cannot hold that bound. Only then is the
// checksum recomputed over everything but the trailing 3 bytes and compared
// against the two bytes before the sentinel. The length bound exists to
// throw away garbage and partial reads without paying for a CRC pass.
func ValidatePacket(raw []byte, chunkSize int) bool {
	if len(raw) <= 13 {
		return false
	}

	packetCount := largeChunkPacketCount
	if chunkSize <= 255 {
		packetCount = chunkSize + 1
	}

	payloadBound := 0
	if raw[12] > DeclaredLengthBias {
		payloadBound = int(raw[12]) - DeclaredLengthBias
	}
	payloadBound += int(raw[13]) * packetCount

	if len(raw)-FrameOverhead < payloadBound {
		return false
	}

	declared := binary.LittleEndian.Uint16(raw[len(raw)-TrailerSize : len(raw)-1])
	return Checksum(raw[:len(raw)-TrailerSize]) == declared
}

// Packet holds the decoded fields of a region transfer frame.
type Packet struct {
	// RegionID is the memory region the frame addresses (or echoes)
	RegionID byte

	// Direction is DirectionWrite or DirectionRead
	Direction byte

	// Index is the zero-based packet index within the transfer
	Index uint16

	// Count is the packet count field; its meaning differs by message
	// type (total packet count on first read responses, page count on
	// write requests)
	Count uint16

	// Payload is the frame payload, sliced from the input frame
	Payload []byte
}

// ParsePacket decodes a complete frame into its fields, verifying the
// preamble, sentinel, declared length, and checksum. It round-trips with
// BuildPacket.
func ParsePacket(frame []byte) (*Packet, error) {
	if len(frame) < MinFrameSize {
		return nil, fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(frame), MinFrameSize)
	}

	if !bytes.Equal(frame[:MagicSize], Magic) {
		return nil, fmt.Errorf("invalid preamble: got % X", frame[:MagicSize])
	}

	if frame[len(frame)-1] != Sentinel {
		return nil, fmt.Errorf("invalid sentinel: got 0x%02X, expected 0x%02X", frame[len(frame)-1], Sentinel)
	}

	declared := int(binary.LittleEndian.Uint16(frame[12:14]))
	payloadLen := declared - DeclaredLengthBias
	if payloadLen < 0 || MinFrameSize+payloadLen != len(frame) {
		return nil, fmt.Errorf("frame length mismatch: got %d bytes, declared length %d implies %d",
			len(frame), declared, MinFrameSize+payloadLen)
	}

	checksumExpected := binary.LittleEndian.Uint16(frame[len(frame)-TrailerSize : len(frame)-1])
	checksumActual := Checksum(frame[:len(frame)-TrailerSize])
	if checksumExpected != checksumActual {
		return nil, fmt.Errorf("checksum mismatch: got 0x%04X, expected 0x%04X", checksumActual, checksumExpected)
	}

	p := &Packet{
		RegionID:  frame[14],
		Direction: frame[15],
		Index:     binary.LittleEndian.Uint16(frame[16:18]),
		Count:     binary.LittleEndian.Uint16(frame[18:20]),
	}
	if payloadLen > 0 {
		p.Payload = frame[HeaderSize : HeaderSize+payloadLen]
	}

	return p, nil
}
