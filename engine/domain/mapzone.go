package domain

import "unicode/utf8"

// MapZoneForArea derives the venue map sheet for a booth area code. Areas
// named with a single hiragana character sit in the second hall; everything
// else is on the first map.
func MapZoneForArea(area string) int {
	r, size := utf8.DecodeRuneInString(area)
	if size == len(area) && r >= '぀' && r <= 'ゟ' {
		return 2
	}
	return 1
}
