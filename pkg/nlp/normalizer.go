package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fillerPhrases are dropped from transcripts before matching. Multi-word
// phrases are removed first so "por favor" does not leave a dangling "por".
var fillerPhrases = []string{
	"por favor",
	"porfavor",
}

var fillerWords = map[string]bool{
	"eh":  true,
	"ehh": true,
	"em":  true,
	"mmm": true,
}

// Normalize lowercases and accent-folds a raw transcript, strips filler
// phrases, converts spoken Spanish number words (0-90, compound tens
// included) into digit strings and collapses runs of adjacent digit tokens
// into a single contiguous number ("uno dos tres" -> "123").
//
// The function is pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = foldAccents(s)

	for _, phrase := range fillerPhrases {
		s = strings.ReplaceAll(s, phrase, " ")
	}

	words := strings.Fields(s)
	filtered := words[:0]
	for _, w := range words {
		if !fillerWords[w] {
			filtered = append(filtered, w)
		}
	}

	return strings.Join(collapseDigitRuns(wordsToDigits(filtered)), " ")
}

// Digits returns only the digit characters of s, in order.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsNumeric reports whether the normalized transcript consists solely of
// digits (after word-to-digit conversion and collapsing).
func IsNumeric(s string) bool {
	return isDigits(Normalize(s))
}

// TitleCase capitalizes the first letter of every word ("juan perez" ->
// "Juan Perez"), the treatment given to dictated names.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// SpokenEmail maps the spoken forms of email symbols onto the symbols
// themselves ("maria arroba correo punto com" -> "maria@correo.com").
func SpokenEmail(s string) string {
	s = strings.ReplaceAll(s, " arroba ", "@")
	s = strings.ReplaceAll(s, "arroba", "@")
	s = strings.ReplaceAll(s, " punto ", ".")
	s = strings.ReplaceAll(s, "punto", ".")
	return strings.ReplaceAll(s, " ", "")
}

func collapseDigitRuns(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if isDigits(w) && len(out) > 0 && isDigits(out[len(out)-1]) {
			out[len(out)-1] += w
			continue
		}
		out = append(out, w)
	}
	return out
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
