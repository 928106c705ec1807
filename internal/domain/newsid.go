package domain

import (
	"strconv"
	"unicode/utf16"
)

// NewsID derives the stable article identifier from its source URL.
//
// The hash is the classic 32-bit rolling string hash (h = h*31 + code) over
// UTF-16 code units with int32 wraparound. The absolute value is taken in
// 64-bit space so the minimum int32 does not overflow. Existing rows were
// keyed with this exact function, so it must not change.
func NewsID(sourceURL string) string {
	var h int32
	for _, code := range utf16.Encode([]rune(sourceURL)) {
		h = (h << 5) - h + int32(code)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return "news_" + strconv.FormatInt(abs, 10)
}
