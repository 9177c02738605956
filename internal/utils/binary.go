package utils

import (
	"bytes"
)

// sniffLength defines the maximum number of bytes inspected when detecting binary content.
const sniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary data.
// Like git, it looks for a NUL byte in the first sniffLength bytes; text in a
// broken encoding is not binary and is decoded with replacement characters.
func IsBinary(data []byte) bool {
	sample := data
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
	}
	return bytes.IndexByte(sample, 0) >= 0
}
