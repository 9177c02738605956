package utils

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodeText converts raw file bytes into a string, replacing every
// ill-formed UTF-8 sequence with the Unicode replacement character.
func DecodeText(data []byte) string {
	decoded, _, transformError := transform.Bytes(runes.ReplaceIllFormed(), data)
	if transformError != nil {
		return string(data)
	}
	return string(decoded)
}
