package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Maria Lopez"))
	assert.ErrorIs(t, ValidateName("   "), ErrInvalidName)
	assert.ErrorIs(t, ValidateName(""), ErrInvalidName)
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument("123456"))
	assert.NoError(t, ValidateDocument("1.234.567"))
	assert.ErrorIs(t, ValidateDocument("12345"), ErrInvalidDocument)
	assert.ErrorIs(t, ValidateDocument("abcdef"), ErrInvalidDocument)
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("3001234567"))
	assert.NoError(t, ValidatePhone("1234567"))
	assert.ErrorIs(t, ValidatePhone("123456"), ErrInvalidPhone)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("maria@gmail.com"))
	assert.ErrorIs(t, ValidateEmail("maria.gmail.com"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmail("@gmail.com"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmail("maria@gmailcom"), ErrInvalidEmail)
}

func TestValidateCardNumber(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("1234567890123456"))
	assert.NoError(t, ValidateCardNumber("1234 5678 9012 3456"))
	assert.ErrorIs(t, ValidateCardNumber("123456789012345"), ErrInvalidCardNumber)
	assert.ErrorIs(t, ValidateCardNumber("12345678901234567"), ErrInvalidCardNumber)
}

func TestValidateCardExpiry(t *testing.T) {
	assert.NoError(t, ValidateCardExpiry("1225"))
	assert.NoError(t, ValidateCardExpiry("12/25"))
	assert.NoError(t, ValidateCardExpiry("0126"))
	assert.ErrorIs(t, ValidateCardExpiry("1325"), ErrInvalidCardExpiry)
	assert.ErrorIs(t, ValidateCardExpiry("0025"), ErrInvalidCardExpiry)
	assert.ErrorIs(t, ValidateCardExpiry("125"), ErrInvalidCardExpiry)
}

func TestValidateCardCVV(t *testing.T) {
	assert.NoError(t, ValidateCardCVV("123"))
	assert.NoError(t, ValidateCardCVV("1234"))
	assert.ErrorIs(t, ValidateCardCVV("12"), ErrInvalidCardCVV)
	assert.ErrorIs(t, ValidateCardCVV("12345"), ErrInvalidCardCVV)
}

func TestFormatCardExpiry(t *testing.T) {
	assert.Equal(t, "12/25", FormatCardExpiry("1225"))
	assert.Equal(t, "12/25", FormatCardExpiry("12 25"))
	assert.Equal(t, "125", FormatCardExpiry("125"))
}

func TestRandomPickupSiteIsKnown(t *testing.T) {
	site := RandomPickupSite()
	assert.Contains(t, PickupSites, site)
}
