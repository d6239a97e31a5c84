// Package crc16 implements the CRC-16/XMODEM checksum used by the
// receiver to protect every record stored in its memory pages.
//
// Parameters: polynomial 0x1021, initial value 0x0000, no reflection,
// no final XOR. The checksum of the ASCII string "123456789" is 0x31C3.
package crc16

const polynomial = 0x1021

var table [256]uint16

func init() {
	for i := range table {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ polynomial
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
}

// Checksum returns the CRC-16/XMODEM checksum of data.
func Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc = crc<<8 ^ table[byte(crc>>8)^b]
	}
	return crc
}

// Update extends an existing checksum with more data. Update(Checksum(a), b)
// equals Checksum(append(a, b...)).
func Update(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc = crc<<8 ^ table[byte(crc>>8)^b]
	}
	return crc
}
