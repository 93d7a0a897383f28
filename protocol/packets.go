package protocol

import (
	"encoding/binary"
	"fmt"
)

// BuildPacket constructs a region transfer frame.
//
// Frame structure (all integers little-endian):
//
//	[MAGIC(12)][LEN(2)][REGION(1)][DIR(1)][INDEX(2)][COUNT(2)][PAYLOAD...][CHECKSUM(2)][SENTINEL]
//
// LEN is the payload length plus 6, covering the four header fields that
// follow it. One call produces one complete frame ready to send.
func BuildPacket(regionID byte, packetIndex uint16, direction byte, packetCount uint16, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("payload length %d exceeds maximum %d bytes", len(payload), MaxPayloadSize)
	}

	frame := make([]byte, 0, HeaderSize+len(payload)+TrailerSize)
	frame = append(frame, Magic...)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, uint16(len(payload)+DeclaredLengthBias))
	frame = append(frame, lenBytes...)

	frame = append(frame, regionID, direction)

	idxBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(idxBytes, packetIndex)
	frame = append(frame, idxBytes...)

	countBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(countBytes, packetCount)
	frame = append(frame, countBytes...)

	frame = append(frame, payload...)

	checksumBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksumBytes, Checksum(frame))
	frame = append(frame, checksumBytes...)

	frame = append(frame, Sentinel)

	return frame, nil
}

// BuildHandshakePacket constructs the handshake frame that opens every
// session. The payload is a fixed 6-byte prefix followed by the ASCII model
// name NUL-padded to HandshakeNameFieldSize bytes; the frame is checksummed
// and terminated exactly like a region transfer frame.
//
// Frame structure:
//
//	[MAGIC(12)][LEN(2)][PREFIX(6)][NAME+PADDING(41)][CHECKSUM(2)][SENTINEL]
func BuildHandshakePacket(model string) ([]byte, error) {
	if len(model) > HandshakeNameFieldSize {
		return nil, fmt.Errorf("model name %q exceeds %d bytes", model, HandshakeNameFieldSize)
	}

	payloadLen := len(handshakePrefix) + HandshakeNameFieldSize
	frame := make([]byte, 0, MagicSize+2+payloadLen+TrailerSize)
	frame = append(frame, Magic...)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, uint16(payloadLen))
	frame = append(frame, lenBytes...)

	frame = append(frame, handshakePrefix...)
	frame = append(frame, model...)
	for i := len(model); i < HandshakeNameFieldSize; i++ {
		frame = append(frame, 0x00)
	}

	checksumBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksumBytes, Checksum(frame))
	frame = append(frame, checksumBytes...)

	frame = append(frame, Sentinel)

	return frame, nil
}
