package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumberWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cero", "0"},
		{"uno", "1"},
		{"quince", "15"},
		{"dieciséis", "16"},
		{"dieciseis", "16"},
		{"veinte", "20"},
		{"veintidós", "22"},
		{"treinta", "30"},
		{"treinta y cinco", "35"},
		{"cuarenta y uno", "41"},
		{"noventa y nueve", "99"},
		{"noventa", "90"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeCollapsesDigitRuns(t *testing.T) {
	assert.Equal(t, "123456", Normalize("uno dos tres cuatro cinco seis"))
	assert.Equal(t, "mi documento es 123456", Normalize("mi documento es uno dos tres cuatro cinco seis"))
	assert.Equal(t, "vencimiento 1225", Normalize("vencimiento 12 25"))
	assert.Equal(t, "vencimiento 1225", Normalize("vencimiento doce veinticinco"))
}

func TestNormalizeDoesNotSplitTeens(t *testing.T) {
	// "dieciséis" must become 16, never "dieci" + "seis" -> 106.
	assert.Equal(t, "16", Normalize("dieciséis"))
	assert.Equal(t, "1616", Normalize("dieciséis dieciseis"))
}

func TestNormalizeCompoundNotGreedy(t *testing.T) {
	// "treinta y" followed by a non-unit keeps the "y".
	assert.Equal(t, "30 y manzanas", Normalize("treinta y manzanas"))
	// "treinta y diez" is not a valid compound.
	assert.Equal(t, "30 y 10", Normalize("treinta y diez"))
}

func TestNormalizeLowercasesAndFolds(t *testing.T) {
	assert.Equal(t, "mi direccion es calle 5", Normalize("  Mi Dirección es Calle cinco "))
	assert.Equal(t, "siguiente", Normalize("SIGUIENTE"))
}

func TestNormalizeStripsFillers(t *testing.T) {
	assert.Equal(t, "agregar 5 manzanas", Normalize("agregar cinco manzanas por favor"))
	assert.Equal(t, "ayuda", Normalize("eh ayuda"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"treinta y cinco",
		"mi documento es uno dos tres cuatro cinco seis",
		"Mi Teléfono es tres cero cero 123 45 67",
		"agregar cinco manzanas por favor",
		"dieciséis",
		"",
		"   ",
		"confirmar compra",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "not idempotent for %q", in)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "3001234567", Digits("mi telefono es 300 123 4567"))
	assert.Equal(t, "", Digits("sin numeros"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("uno dos tres"))
	assert.True(t, IsNumeric("45 67"))
	assert.False(t, IsNumeric("mi documento es 123"))
	assert.False(t, IsNumeric(""))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Juan Perez Garcia", TitleCase("juan perez garcia"))
	assert.Equal(t, "Maria", TitleCase("MARIA"))
}

func TestSpokenEmail(t *testing.T) {
	assert.Equal(t, "maria@correo.com", SpokenEmail("maria arroba correo punto com"))
	assert.Equal(t, "juan@mail.com", SpokenEmail("juan arroba mail.com"))
}
