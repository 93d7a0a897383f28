package protocol

// Checksum algorithm constants.
const (
	// CRC16Polynomial is the reflected CRC-16 polynomial (0x8005 bit-reversed)
	CRC16Polynomial = 0xA001

	// CRC16InitialValue is the CRC-16 initial register value
	CRC16InitialValue = 0x0000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)

// Checksum computes the 16-bit frame checksum: a reflected CRC-16 with
// polynomial 0xA001, initial register 0x0000, bits shifted out least
// significant first, no final XOR (CRC-16/ARC). The result is serialized
// little-endian when embedded in a frame.
//
// The radio computes the identical variant on its side and silently drops
// any frame whose checksum does not match; there is no negotiation of
// checksum parameters.
func Checksum(data []byte) uint16 {
	crc := uint16(CRC16InitialValue)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < BitsPerByte; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ CRC16Polynomial
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
