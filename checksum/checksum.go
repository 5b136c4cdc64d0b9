/*
Package checksum implements the 16-bit internal header checksum used by SNES
ROM images.

The checksum is the truncated 16-bit sum of every byte in the image, computed
as if the header checksum word were 0x0000 and its complement 0xffff. The
console firmware and most flash carts verify that the stored complement XORs
with the stored checksum to 0xffff.
*/
package checksum

import "github.com/owedit/owedit/rom"

const (
	complementOffset = 0x7fdc
	checksumOffset   = 0x7fde
)

// Update returns the result of adding the bytes in p to the checksum.
func Update(sum uint16, p []byte) uint16 {
	for _, b := range p {
		sum += uint16(b)
	}
	return sum
}

// Checksum returns the header checksum of a raw image buffer. The stored
// checksum and complement words are substituted with their neutral values
// before summing.
func Checksum(data []byte) uint16 {
	sum := Update(0, data[:complementOffset])
	sum = Update(sum, []byte{0xff, 0xff, 0x00, 0x00})
	return Update(sum, data[checksumOffset+2:])
}

// Fix recomputes the checksum of the image and stores the checksum and
// complement words in the header.
func Fix(i *rom.Image) error {
	sum := Checksum(i.Bytes())
	if err := i.PutUint16At(complementOffset, sum^0xffff); err != nil {
		return err
	}
	return i.PutUint16At(checksumOffset, sum)
}
