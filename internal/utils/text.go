package utils

import (
	"unicode/utf8"
)

// InvalidTextOffset returns the offset of the first byte that does not decode as UTF-8,
// or -1 when the whole slice is valid text.
func InvalidTextOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	offset := 0
	for offset < len(data) {
		decodedRune, runeSize := utf8.DecodeRune(data[offset:])
		if decodedRune == utf8.RuneError && runeSize <= 1 {
			return offset
		}
		offset += runeSize
	}
	return -1
}

// ApproximateTokenCount estimates how much model context text would consume.
// The estimate is the number of characters divided by approximateCharactersPerToken.
func ApproximateTokenCount(text string) int {
	return utf8.RuneCountInString(text) / approximateCharactersPerToken
}
