package compose

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeOutput turns captured process output into text. Invalid UTF-8 is
// replaced with U+FFFD instead of being rejected, so decoding never fails.
func DecodeOutput(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
