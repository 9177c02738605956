package utils

import (
	"net/http"
)

// DetectMimeType returns the MIME type of the provided content.
// It inspects up to sniffLength bytes using http.DetectContentType.
func DetectMimeType(data []byte) string {
	if len(data) > sniffLength {
		data = data[:sniffLength]
	}
	return http.DetectContentType(data)
}
