package deck

import "strings"

func isHangul(r rune) bool {
	return (r >= 0x1100 && r <= 0x11FF) || // jamo
		(r >= 0x3130 && r <= 0x318F) || // compatibility jamo
		(r >= 0xAC00 && r <= 0xD7AF) // syllables
}

// Silhouette hides every Hangul character behind an underscore, one per
// syllable and separated by spaces, so the card shows the word's shape only:
// "감정을" becomes "_ _ _". Other characters are kept.
func Silhouette(word string) string {
	var b strings.Builder
	prevHangul := false
	for _, r := range word {
		if !isHangul(r) {
			b.WriteRune(r)
			prevHangul = false
			continue
		}
		if prevHangul {
			b.WriteByte(' ')
		}
		b.WriteByte('_')
		prevHangul = true
	}
	return b.String()
}
