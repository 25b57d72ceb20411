package nlp

import "strconv"

// Spanish number vocabulary, 0-29 plus the tens. Words are stored
// accent-folded because normalization folds the transcript before lookup
// ("dieciséis" arrives as "dieciseis").
var numberWords = map[string]int{
	"cero":    0,
	"un":      1,
	"una":     1,
	"uno":     1,
	"dos":     2,
	"tres":    3,
	"cuatro":  4,
	"cinco":   5,
	"seis":    6,
	"siete":   7,
	"ocho":    8,
	"nueve":   9,
	"diez":    10,
	"once":    11,
	"doce":    12,
	"trece":   13,
	"catorce": 14,
	"quince":  15,

	"dieciseis":  16,
	"diecisiete": 17,
	"dieciocho":  18,
	"diecinueve": 19,

	"veinte":       20,
	"veintiuno":    21,
	"veintidos":    22,
	"veintitres":   23,
	"veinticuatro": 24,
	"veinticinco":  25,
	"veintiseis":   26,
	"veintisiete":  27,
	"veintiocho":   28,
	"veintinueve":  29,

	"treinta":   30,
	"cuarenta":  40,
	"cincuenta": 50,
	"sesenta":   60,
	"setenta":   70,
	"ochenta":   80,
	"noventa":   90,
}

// tensWords are the bases that can form compounds: "treinta y cinco" -> 35.
var tensWords = map[string]int{
	"treinta":   30,
	"cuarenta":  40,
	"cincuenta": 50,
	"sesenta":   60,
	"setenta":   70,
	"ochenta":   80,
	"noventa":   90,
}

// compoundUnits are the only words valid after "treinta y ...".
var compoundUnits = map[string]int{
	"un":     1,
	"uno":    1,
	"una":    1,
	"dos":    2,
	"tres":   3,
	"cuatro": 4,
	"cinco":  5,
	"seis":   6,
	"siete":  7,
	"ocho":   8,
	"nueve":  9,
}

// wordsToDigits replaces number words in a token stream with digit strings.
// The compound form (tens + "y" + unit) is tried before the single-word
// lookup, so longer spellings always win and "dieciseis" can never be
// mis-split into "dieci" + "seis".
func wordsToDigits(words []string) []string {
	out := make([]string, 0, len(words))

	for i := 0; i < len(words); i++ {
		if tens, ok := tensWords[words[i]]; ok && i+2 < len(words) && words[i+1] == "y" {
			if unit, ok := compoundUnits[words[i+2]]; ok {
				out = append(out, strconv.Itoa(tens+unit))
				i += 2
				continue
			}
		}

		if n, ok := numberWords[words[i]]; ok {
			out = append(out, strconv.Itoa(n))
			continue
		}

		out = append(out, words[i])
	}

	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
