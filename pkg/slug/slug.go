// Package slug derives URL- and object-key-safe slugs from free text, such
// as CDN object keys from user prompts.
package slug

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and strips the combining marks,
// so "café phötoshoot" folds to "cafe photoshoot".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts free text into a lowercase hyphen-separated slug, truncated
// to maxLen runes (0 means no limit). Non-alphanumeric runs collapse into a
// single hyphen.
func Make(text string, maxLen int) string {
	folded, _, err := transform.String(asciiFold, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.Trim(b.String(), "-")
	if maxLen > 0 && len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	return s
}

// MakeUnique appends a short random hex suffix so concurrent uploads with
// identical prompts never collide on object keys.
func MakeUnique(text string, maxLen int) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	suffix := hex.EncodeToString(buf)

	s := Make(text, maxLen)
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}
