package vm

import (
	"encoding/binary"
	"fmt"
)

// Image is a program image: words to place in memory starting at Origin.
type Image struct {
	Origin Word
	Words  []Word
}

// ParseImage decodes a big-endian image file. The first word is the load
// origin and at least one word of content must follow it.
func ParseImage(file []byte) (*Image, error) {
	if len(file)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformedImage, len(file))
	}
	if len(file) < 4 {
		return nil, fmt.Errorf("%w: file is too short", ErrMalformedImage)
	}

	/* the image is stored big endian, the LC-3 byte order; decode it
	   into host words regardless of host endianness */
	img := &Image{
		Origin: Word(binary.BigEndian.Uint16(file)),
		Words:  make([]Word, 0, len(file)/2-1),
	}
	for j := 2; j < len(file); j += 2 {
		img.Words = append(img.Words, Word(binary.BigEndian.Uint16(file[j:])))
	}

	return img, nil
}

// load copies the image into memory. Addresses past 0xFFFF wrap.
func (mem *Memory) load(img *Image) {
	addr := img.Origin
	for _, w := range img.Words {
		mem.Write(addr, w)
		addr++
	}
}
