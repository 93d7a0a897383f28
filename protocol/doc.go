// Package protocol implements the RDTP framed serial protocol spoken by
// Retevis HA1-series radios in programming mode.
//
// # Frame Layout
//
// Every frame, in both directions, has the same shape (integers are
// little-endian):
//
//	offset 0   : 12 bytes  magic preamble "RDTP\x01" + 7 zero bytes
//	offset 12  : 2 bytes   declared length = payload length + 6
//	offset 14  : 1 byte    region id (echoed by responses)
//	offset 15  : 1 byte    direction (0 = write, 2 = read)
//	offset 16  : 2 bytes   packet index
//	offset 18  : 2 bytes   packet count / total count
//	offset 20  : N bytes   payload
//	offset 20+N: 2 bytes   CRC-16 over bytes [0, 20+N)
//	offset 22+N: 1 byte    sentinel 0xFF
//
// The handshake frame shares the framing but carries a fixed 6-byte prefix
// and a 41-byte NUL-padded model name instead of the region header fields.
//
// # Building and Validating
//
// Use the Build* functions to produce complete frames:
//
//	frame, err := protocol.BuildPacket(regionID, index, protocol.DirectionRead, count, payload)
//	frame, err := protocol.BuildHandshakePacket("HA1G ")
//
// Incoming bytes are screened with ValidatePacket, which applies a cheap
// length bound before the checksum pass, and decoded with ParsePacket:
//
//	if !protocol.ValidatePacket(raw, chunkSize) {
//	    // garbage or partial read, discard
//	}
//	pkt, err := protocol.ParsePacket(raw)
//
// # Checksum
//
// Checksum is the reflected CRC-16 variant the radio verifies on every
// frame (CRC-16/ARC: polynomial 0xA001, initial value 0x0000, no final
// XOR). "123456789" checksums to 0xBB3D.
package protocol
