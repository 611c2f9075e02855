// Package loader reads LC-3 object files: a big-endian stream of 16-bit
// words whose first word is the origin address and whose remaining words
// are loaded into memory starting at that address.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrFileUnreadable is returned when the object file cannot be opened or
// read.
var ErrFileUnreadable = errors.New("loader: file unreadable")

// ErrOddByteCount is returned when the file's length is not a whole
// number of 16-bit words.
var ErrOddByteCount = errors.New("loader: odd byte count")

// ErrEmpty is returned when the file contains no words at all, so it
// cannot even supply an origin.
var ErrEmpty = errors.New("loader: empty object file")

// Image is a decoded LC-3 object file: an origin address and the words
// to be placed there onward.
type Image struct {
	// Origin is the address of the first loaded word.
	Origin uint16

	// Words holds the program and data words, in load order.
	Words []uint16
}

// Load reads an LC-3 object file from path. The file format is a
// big-endian sequence of 16-bit words: the first word is the origin,
// every subsequent word is loaded starting at that address.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, err)
	}
	return Decode(data)
}

// Decode parses raw object-file bytes into an Image.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddByteCount, len(data))
	}

	words := make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(data[2*i : 2*i+2])
	}

	return &Image{Origin: words[0], Words: words[1:]}, nil
}

// AsLoadImage returns the image as the [origin, word...] slice that
// emu.Machine.LoadImage and emu.Memory.LoadImage expect.
func (img *Image) AsLoadImage() []uint16 {
	out := make([]uint16, 0, len(img.Words)+1)
	out = append(out, img.Origin)
	out = append(out, img.Words...)
	return out
}
