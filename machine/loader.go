package machine

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// DecodeImage pairs the bytes of a program image into little-endian words.
func DecodeImage(b []byte) ([]Word, error) {
	if len(b)%2 != 0 {
		return nil, &Error{Kind: MalformedImage, Size: len(b)}
	}
	words := make([]Word, len(b)/2)
	for i := range words {
		words[i] = Word(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return words, nil
}

// ReadImage reads a whole image from r.
func ReadImage(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}
	return b, nil
}

// LoadFile reads the image at path.
func LoadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program image %s: %w", path, err)
	}
	defer f.Close()
	return ReadImage(f)
}

// Load resets the machine and copies the image into memory from address 0.
// An image longer than the address space is truncated and reported as
// ImageTooLarge; the truncated program stays loaded.
func (m *Machine) Load(image []byte) error {
	words, err := DecodeImage(image)
	if err != nil {
		return err
	}
	m.Reset()
	n := copy(m.mem[:], words)
	if n < len(words) {
		return &Error{Kind: ImageTooLarge, Size: len(words)}
	}
	return nil
}
